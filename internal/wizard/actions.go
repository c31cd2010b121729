package wizard

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/riverfjs/tgmarkup/internal/profile"
	"github.com/riverfjs/tgmarkup/internal/session"
)

// Button actions. Parameterized actions carry their argument after ':'.
const (
	actionAddPostType   = "add_post_type"
	actionAddExample    = "add_example"
	actionExample       = "example"
	actionCreatePost    = "create_post"
	actionPost          = "post"
	actionEditConfig    = "edit_config"
	actionEdit          = "edit"
	actionEditTypes     = "edit_types"
	actionType          = "type"
	actionRenameType    = "rename_type"
	actionDeleteType    = "delete_type"
	actionConfirmDelete = "confirm_delete"
	actionCancelDelete  = "cancel_delete"
	actionListExamples  = "list_examples"
	actionExampleItem   = "example_item"
	actionModifyExample = "modify_example"
	actionRemoveExample = "remove_example"
)

func action(name, arg string) string {
	return name + ":" + arg
}

// editSteps maps the edit:<field> argument to its step and prompt.
var editSteps = map[string]struct {
	step   session.Step
	prompt string
}{
	"name":        {session.EditingName, "Send the new name:"},
	"tag":         {session.EditingTag, "Send the new tag:"},
	"personality": {session.EditingPersonality, "Send the new personality description:"},
	"services":    {session.EditingServices, "Send the new services (comma separated):"},
}

// HandleAction 处理按钮回调
func (w *Wizard) HandleAction(ctx context.Context, chatID int64, data string) ([]Reply, error) {
	name, arg, _ := strings.Cut(data, ":")
	st, err := w.state(ctx, chatID)
	if err != nil {
		return nil, err
	}

	switch name {
	case actionAddPostType:
		return w.reply(ctx, chatID, session.State{Step: session.AwaitingPostType},
			plain("Send the name of the new post type:"))

	case actionAddExample:
		return w.choosePostType(ctx, actionExample, "Choose the post type to add an example to:")

	case actionExample:
		return w.selectPostType(ctx, chatID, arg, session.AwaitingExample,
			"Send me an example for the post type '%s'.")

	case actionCreatePost:
		return w.choosePostType(ctx, actionPost, "Choose the post type:")

	case actionPost:
		return w.selectPostType(ctx, chatID, arg, session.AwaitingTopic,
			"Send the topic for the '%s' post:")

	case actionEditConfig:
		return []Reply{withButtons("Choose the field to edit:", [][]Button{
			{{Text: "Name", Action: action(actionEdit, "name")}},
			{{Text: "Tag", Action: action(actionEdit, "tag")}},
			{{Text: "Personality", Action: action(actionEdit, "personality")}},
			{{Text: "Services", Action: action(actionEdit, "services")}},
		})}, nil

	case actionEdit:
		field, ok := editSteps[arg]
		if !ok {
			break
		}
		return w.reply(ctx, chatID, session.State{Step: field.step}, plain("%s", field.prompt))

	case actionEditTypes:
		return w.choosePostType(ctx, actionType, "Choose the post type to edit:")

	case actionType:
		ok, err := w.hasPostType(ctx, arg)
		if err != nil || !ok {
			return notFound(err)
		}
		return w.reply(ctx, chatID, session.State{Step: session.Idle, PostType: arg},
			withButtons("Options for the type '"+arg+"':", [][]Button{
				{{Text: "Rename", Action: actionRenameType}},
				{{Text: "Delete type", Action: actionDeleteType}},
				{{Text: "Show examples", Action: actionListExamples}},
			}))

	case actionRenameType:
		if st.PostType == "" {
			return []Reply{plain(msgNoSelection)}, nil
		}
		return w.reply(ctx, chatID, session.State{Step: session.RenamingPostType, PostType: st.PostType},
			plain("Send the new name for this post type:"))

	case actionDeleteType:
		if st.PostType == "" {
			return []Reply{plain(msgNoSelection)}, nil
		}
		return []Reply{withButtons(
			"Delete the post type '"+st.PostType+"'? All its examples are deleted too.",
			[][]Button{
				{{Text: "Yes, delete", Action: actionConfirmDelete}},
				{{Text: "No", Action: actionCancelDelete}},
			})}, nil

	case actionConfirmDelete:
		if st.PostType == "" {
			return []Reply{plain(msgNoSelection)}, nil
		}
		err := w.update(ctx, func(p *profile.Profile) error {
			return p.DeletePostType(st.PostType)
		})
		if errors.Is(err, profile.ErrPostTypeNotFound) {
			return w.clear(ctx, chatID, plain(msgPostTypeNotFound))
		}
		if err != nil {
			return nil, err
		}
		return w.clear(ctx, chatID, plain("Post type '%s' deleted.", st.PostType))

	case actionCancelDelete:
		return w.clear(ctx, chatID, plain("Deletion cancelled."))

	case actionListExamples:
		return w.listExamples(ctx, st)

	case actionExampleItem, actionModifyExample, actionRemoveExample:
		i, err := strconv.Atoi(arg)
		if err != nil {
			break
		}
		if st.PostType == "" {
			return []Reply{plain(msgNoSelection)}, nil
		}
		return w.exampleAction(ctx, chatID, st, name, i)
	}

	w.logger.Warn("unknown wizard action", "chat", chatID, "action", data)
	return []Reply{plain(msgUnknown)}, nil
}

// reply stores st and returns r.
func (w *Wizard) reply(ctx context.Context, chatID int64, st session.State, r Reply) ([]Reply, error) {
	if err := w.put(ctx, chatID, st); err != nil {
		return nil, err
	}
	return []Reply{r}, nil
}

// clear resets the chat and returns r.
func (w *Wizard) clear(ctx context.Context, chatID int64, r Reply) ([]Reply, error) {
	if err := w.sessions.Clear(ctx, chatID); err != nil {
		return nil, err
	}
	return []Reply{r}, nil
}

// choosePostType lists every post type as a button carrying next:<type>.
func (w *Wizard) choosePostType(ctx context.Context, next, prompt string) ([]Reply, error) {
	p, err := w.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := p.PostTypeNames()
	if len(names) == 0 {
		return []Reply{plain("There are no post types yet. Add one from /menu.")}, nil
	}
	buttons := make([][]Button, 0, len(names))
	for _, n := range names {
		buttons = append(buttons, []Button{{Text: n, Action: action(next, n)}})
	}
	return []Reply{withButtons(prompt, buttons)}, nil
}

// selectPostType remembers the chosen post type and moves to step.
func (w *Wizard) selectPostType(ctx context.Context, chatID int64, name string, step session.Step, format string) ([]Reply, error) {
	ok, err := w.hasPostType(ctx, name)
	if err != nil || !ok {
		return notFound(err)
	}
	return w.reply(ctx, chatID, session.State{Step: step, PostType: name}, plain(format, name))
}

func (w *Wizard) hasPostType(ctx context.Context, name string) (bool, error) {
	p, err := w.profiles.Load(ctx)
	if err != nil {
		return false, err
	}
	_, err = p.Examples(name)
	return err == nil, nil
}

// notFound passes a store error through, or reports a missing post type.
func notFound(err error) ([]Reply, error) {
	if err != nil {
		return nil, err
	}
	return []Reply{plain(msgPostTypeNotFound)}, nil
}

func (w *Wizard) listExamples(ctx context.Context, st session.State) ([]Reply, error) {
	if st.PostType == "" {
		return []Reply{plain(msgNoSelection)}, nil
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
		return []Reply{plain("This post type has no examples.")}, nil
	}
	buttons := make([][]Button, 0, len(examples))
	for i, ex := range examples {
		buttons = append(buttons, []Button{{
			Text:   examplePreview(i, ex),
			Action: action(actionExampleItem, strconv.Itoa(i)),
		}})
	}
	return []Reply{withButtons("Choose the example to edit or delete:", buttons)}, nil
}

func (w *Wizard) exampleAction(ctx context.Context, chatID int64, st session.State, name string, i int) ([]Reply, error) {
	switch name {
	case actionModifyExample:
		return w.reply(ctx, chatID,
			session.State{Step: session.EditingExample, PostType: st.PostType, ExampleIndex: i},
			plain("Send the new text for this example:"))

	case actionRemoveExample:
		var removed string
		err := w.update(ctx, func(p *profile.Profile) (err error) {
			removed, err = p.DeleteExample(st.PostType, i)
			return err
		})
		if errors.Is(err, profile.ErrExampleNotFound) || errors.Is(err, profile.ErrPostTypeNotFound) {
			return []Reply{plain("Could not delete the example.")}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Reply{{Text: "Example deleted:\n" + removed, ParseMode: ParseModeHTML}}, nil
	}

	p, err := w.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	examples, err := p.Examples(st.PostType)
	if err != nil || i < 0 || i >= len(examples) {
		return []Reply{plain("Example not found.")}, nil
	}
	return []Reply{{
		Text:      "Selected example:\n" + examples[i] + "\nWhat do you want to do?",
		ParseMode: ParseModeHTML,
		Buttons: [][]Button{
			{{Text: "Edit", Action: action(actionModifyExample, strconv.Itoa(i))}},
			{{Text: "Delete", Action: action(actionRemoveExample, strconv.Itoa(i))}},
		},
	}}, nil
}
