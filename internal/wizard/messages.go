package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/riverfjs/tgmarkup"
	"github.com/riverfjs/tgmarkup/internal/profile"
	"github.com/riverfjs/tgmarkup/internal/session"
)

const (
	msgUnknown          = "Unrecognized action. Use /menu to see the options."
	msgNoSelection      = "Choose a post type first from /menu."
	msgPostTypeNotFound = "Post type not found."
	msgPostTypeExists   = "That post type already exists. Try another name."
	msgEmptyName        = "The name cannot be empty."
)

// profileFields are the steps that store one text field of the profile.
var profileFields = map[session.Step]struct {
	set  func(p *profile.Profile, text string)
	next session.Step
	done string
}{
	session.AwaitingName: {
		set:  func(p *profile.Profile, s string) { p.Name = s },
		next: session.AwaitingTag,
		done: "Great. Now send the tag (for example: @example):",
	},
	session.AwaitingTag: {
		set:  func(p *profile.Profile, s string) { p.Tag = s },
		next: session.AwaitingPersonality,
		done: "Good. Write a short description of the character's personality:",
	},
	session.AwaitingPersonality: {
		set:  func(p *profile.Profile, s string) { p.Personality = s },
		next: session.AwaitingServices,
		done: "Finally, list the services or products offered (comma separated):",
	},
	session.AwaitingServices: {
		set:  func(p *profile.Profile, s string) { p.Services = profile.ParseServices(s) },
		next: session.Idle,
		done: "Setup complete. Use /menu to see the options.",
	},
	session.EditingName: {
		set:  func(p *profile.Profile, s string) { p.Name = s },
		done: "Name updated.",
	},
	session.EditingTag: {
		set:  func(p *profile.Profile, s string) { p.Tag = s },
		done: "Tag updated.",
	},
	session.EditingPersonality: {
		set:  func(p *profile.Profile, s string) { p.Personality = s },
		done: "Personality updated.",
	},
	session.EditingServices: {
		set:  func(p *profile.Profile, s string) { p.Services = profile.ParseServices(s) },
		done: "Services updated.",
	},
}

// HandleMessage 按当前会话状态处理一条文本消息
func (w *Wizard) HandleMessage(ctx context.Context, msg Message) ([]Reply, error) {
	st, err := w.state(ctx, msg.ChatID)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(msg.Text)

	if field, ok := profileFields[st.Step]; ok {
		if err := w.update(ctx, func(p *profile.Profile) error {
			field.set(p, text)
			return nil
		}); err != nil {
			return nil, err
		}
		if field.next == session.Idle {
			return w.clear(ctx, msg.ChatID, plain("%s", field.done))
		}
		return w.reply(ctx, msg.ChatID, session.State{Step: field.next}, plain("%s", field.done))
	}

	switch st.Step {
	case session.AwaitingPostType:
		return w.addPostType(ctx, msg.ChatID, text)
	case session.AwaitingExample:
		return w.addExample(ctx, st, msg)
	case session.AwaitingTopic:
		return w.createPost(ctx, msg.ChatID, st, text)
	case session.RenamingPostType:
		return w.renamePostType(ctx, msg.ChatID, st, text)
	case session.EditingExample:
		return w.updateExample(ctx, msg.ChatID, st, msg)
	}
	return []Reply{plain("Unrecognized message. Use /menu to see the options.")}, nil
}

// exampleMarkup keeps the formatting of an example post as HTML.
func exampleMarkup(msg Message) string {
	text, entities := tgmarkup.TrimSpace(msg.Text, msg.Entities)
	return tgmarkup.Reconstruct(text, entities, tgmarkup.WithNesting(tgmarkup.NestingSplit))
}

func (w *Wizard) addPostType(ctx context.Context, chatID int64, text string) ([]Reply, error) {
	var name string
	err := w.update(ctx, func(p *profile.Profile) (err error) {
		name, err = p.AddPostType(text)
		return err
	})
	switch {
	case errors.Is(err, profile.ErrPostTypeExists):
		return []Reply{plain(msgPostTypeExists)}, nil
	case errors.Is(err, profile.ErrEmptyName):
		return []Reply{plain(msgEmptyName)}, nil
	case err != nil:
		return nil, err
	}
	return w.clear(ctx, chatID, plain("Post type '%s' added.\nUse /menu for more options.", name))
}

func (w *Wizard) addExample(ctx context.Context, st session.State, msg Message) ([]Reply, error) {
	if st.PostType == "" {
		return []Reply{plain(msgNoSelection)}, nil
	}
	err := w.update(ctx, func(p *profile.Profile) error {
		return p.AddExample(st.PostType, exampleMarkup(msg))
	})
	switch {
	case errors.Is(err, profile.ErrDuplicateExample):
		return []Reply{plain("This example already exists. It was not added again.")}, nil
	case errors.Is(err, profile.ErrPostTypeNotFound):
		return w.clear(ctx, msg.ChatID, plain(msgPostTypeNotFound))
	case err != nil:
		return nil, err
	}
	return []Reply{plain("Example added to the post type '%s'.\nYou can keep adding more or use /menu.", st.PostType)}, nil
}

// createPost 随机选一个示例交给 Generator，输出的 Markdown 转为 HTML 分块回复
func (w *Wizard) createPost(ctx context.Context, chatID int64, st session.State, topic string) ([]Reply, error) {
	if err := w.sessions.Clear(ctx, chatID); err != nil {
		return nil, err
	}
	p, err := w.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	examples, err := p.Examples(st.PostType)
	if err != nil {
		return []Reply{plain(msgPostTypeNotFound)}, nil
	}
	if len(examples) == 0 {
		return []Reply{plain("There are no examples for this post type. Add some before creating a post.")}, nil
	}
	if w.generator == nil {
		return []Reply{plain("No post generator is configured.")}, nil
	}

	req := Request{
		Profile:  p,
		PostType: st.PostType,
		Example:  examples[w.pick(len(examples))],
		Topic:    topic,
	}
	markdown, err := w.generator.Generate(ctx, req)
	if err != nil {
		w.logger.Error("post generation failed", "chat", chatID, "post_type", st.PostType, "error", err)
		return []Reply{plain("An error occurred while generating the post: %v", err)}, nil
	}

	texts, err := tgmarkup.ProcessMarkdown(ctx, markdown, w.maxMessageLength)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return []Reply{plain("The generator returned an empty post.")}, nil
	}
	replies := make([]Reply, 0, len(texts))
	for _, t := range texts {
		replies = append(replies, Reply{Text: t.Markup, ParseMode: t.ParseMode})
	}
	return replies, nil
}

func (w *Wizard) renamePostType(ctx context.Context, chatID int64, st session.State, text string) ([]Reply, error) {
	var name string
	err := w.update(ctx, func(p *profile.Profile) (err error) {
		name, err = p.RenamePostType(st.PostType, text)
		return err
	})
	switch {
	case errors.Is(err, profile.ErrPostTypeNotFound):
		return w.clear(ctx, chatID, plain(msgPostTypeNotFound))
	case errors.Is(err, profile.ErrPostTypeExists):
		return []Reply{plain(msgPostTypeExists)}, nil
	case errors.Is(err, profile.ErrEmptyName):
		return []Reply{plain(msgEmptyName)}, nil
	case err != nil:
		return nil, err
	}
	return w.reply(ctx, chatID, session.State{Step: session.Idle, PostType: name},
		plain("The post type was renamed to '%s'.", name))
}

func (w *Wizard) updateExample(ctx context.Context, chatID int64, st session.State, msg Message) ([]Reply, error) {
	err := w.update(ctx, func(p *profile.Profile) error {
		return p.UpdateExample(st.PostType, st.ExampleIndex, exampleMarkup(msg))
	})
	next := session.State{Step: session.Idle, PostType: st.PostType}
	switch {
	case errors.Is(err, profile.ErrExampleNotFound), errors.Is(err, profile.ErrPostTypeNotFound):
		return w.reply(ctx, chatID, next, plain("Could not update the example."))
	case err != nil:
		return nil, err
	}
	return w.reply(ctx, chatID, next, plain("Example updated."))
}
