// Package profile holds the character profile a post author configures:
// identity fields plus the post types and their example posts.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyName        = errors.New("post type name is empty")
	ErrPostTypeExists   = errors.New("post type already exists")
	ErrPostTypeNotFound = errors.New("post type not found")
	ErrDuplicateExample = errors.New("example already exists")
	ErrExampleNotFound  = errors.New("example not found")
)

// PostType 一类帖子及其示例（示例以 HTML 标记保存）
type PostType struct {
	Examples []string `json:"examples"`
}

// Profile 角色配置
type Profile struct {
	Name        string               `json:"name"`
	Tag         string               `json:"tag"`
	Personality string               `json:"personality"`
	Services    []string             `json:"services"`
	PostTypes   map[string]*PostType `json:"post_types"`
}

// New returns an empty profile.
func New() *Profile {
	return &Profile{Services: []string{}, PostTypes: map[string]*PostType{}}
}

// Complete reports whether the initial setup has run.
func (p *Profile) Complete() bool {
	return p.Name != ""
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Services = slices.Clone(p.Services)
	c.PostTypes = make(map[string]*PostType, len(p.PostTypes))
	for name, pt := range p.PostTypes {
		examples := []string{}
		if pt != nil && pt.Examples != nil {
			examples = slices.Clone(pt.Examples)
		}
		c.PostTypes[name] = &PostType{Examples: examples}
	}
	return &c
}

// PostTypeNames returns the post type names in sorted order.
func (p *Profile) PostTypeNames() []string {
	names := make([]string, 0, len(p.PostTypes))
	for name := range p.PostTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (p *Profile) postType(name string) (*PostType, error) {
	key := normalize(name)
	pt, ok := p.PostTypes[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPostTypeNotFound)
	}
	// "promo": null in a profile file
	if pt == nil {
		pt = &PostType{Examples: []string{}}
		p.PostTypes[key] = pt
	}
	return pt, nil
}

// AddPostType 添加帖子类型，名称统一转小写，返回规范化后的名称
func (p *Profile) AddPostType(name string) (string, error) {
	key := normalize(name)
	if key == "" {
		return "", ErrEmptyName
	}
	if _, ok := p.PostTypes[key]; ok {
		return "", fmt.Errorf("%q: %w", key, ErrPostTypeExists)
	}
	if p.PostTypes == nil {
		p.PostTypes = map[string]*PostType{}
	}
	p.PostTypes[key] = &PostType{Examples: []string{}}
	return key, nil
}

// RenamePostType moves a post type and its examples to a new name.
func (p *Profile) RenamePostType(oldName, newName string) (string, error) {
	pt, err := p.postType(oldName)
	if err != nil {
		return "", err
	}
	from, to := normalize(oldName), normalize(newName)
	if to == "" {
		return "", ErrEmptyName
	}
	if to == from {
		return to, nil
	}
	if _, ok := p.PostTypes[to]; ok {
		return "", fmt.Errorf("%q: %w", to, ErrPostTypeExists)
	}
	delete(p.PostTypes, from)
	p.PostTypes[to] = pt
	return to, nil
}

// DeletePostType removes a post type together with its examples.
func (p *Profile) DeletePostType(name string) error {
	if _, err := p.postType(name); err != nil {
		return err
	}
	delete(p.PostTypes, normalize(name))
	return nil
}

// Examples returns the examples of a post type.
func (p *Profile) Examples(name string) ([]string, error) {
	pt, err := p.postType(name)
	if err != nil {
		return nil, err
	}
	return pt.Examples, nil
}

// AddExample 追加示例，重复内容返回 ErrDuplicateExample
func (p *Profile) AddExample(name, example string) error {
	pt, err := p.postType(name)
	if err != nil {
		return err
	}
	if slices.Contains(pt.Examples, example) {
		return ErrDuplicateExample
	}
	pt.Examples = append(pt.Examples, example)
	return nil
}

func (pt *PostType) checkIndex(i int) error {
	if i < 0 || i >= len(pt.Examples) {
		return fmt.Errorf("index %d: %w", i, ErrExampleNotFound)
	}
	return nil
}

// UpdateExample replaces the example at index i.
func (p *Profile) UpdateExample(name string, i int, example string) error {
	pt, err := p.postType(name)
	if err != nil {
		return err
	}
	if err := pt.checkIndex(i); err != nil {
		return err
	}
	pt.Examples[i] = example
	return nil
}

// DeleteExample removes the example at index i and returns it.
func (p *Profile) DeleteExample(name string, i int) (string, error) {
	pt, err := p.postType(name)
	if err != nil {
		return "", err
	}
	if err := pt.checkIndex(i); err != nil {
		return "", err
	}
	removed := pt.Examples[i]
	pt.Examples = slices.Delete(pt.Examples, i, i+1)
	return removed, nil
}

// ParseServices splits a comma separated list, trimming items and dropping
// empty ones.
func ParseServices(s string) []string {
	services := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			services = append(services, item)
		}
	}
	return services
}
