// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package markers

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
)

// MetadataKey is the namespaced key under which the record is published
// when it is serialized next to other attributes of a test.
const MetadataKey = "_qatoolbox_metadata"

// InvalidIDMessage is the message of every InvalidTestError raised for a
// malformed test case ID.
const InvalidIDMessage = "Test case ID must be a non-empty string"

const bannerWidth = 60

var banner = strings.Repeat("=", bannerWidth)

// Metadata is the record attached to a decorated test function.
//
// A nil optional field is absent. A pointer to "" is present and empty.
type Metadata struct {
	TestcaseID  string  `json:"testcase_id" yaml:"testcase_id"`
	Description *string `json:"description" yaml:"description"`
	Priority    *string `json:"priority" yaml:"priority"`
	Component   *string `json:"component" yaml:"component"`
}

func (m Metadata) clone() Metadata {
	return Metadata{
		TestcaseID:  m.TestcaseID,
		Description: cloneString(m.Description),
		Priority:    cloneString(m.Priority),
		Component:   cloneString(m.Component),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Banner renders the block printed before each invocation of a function
// named function declared in module.
func (m Metadata) Banner(function, module string) string {
	var b strings.Builder
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "TEST CASE: %s\n", m.TestcaseID)
	b.WriteString(banner + "\n")
	if m.Description != nil {
		fmt.Fprintf(&b, "Description: %s\n", *m.Description)
	}
	if m.Priority != nil {
		fmt.Fprintf(&b, "Priority: %s\n", *m.Priority)
	}
	if m.Component != nil {
		fmt.Fprintf(&b, "Component: %s\n", *m.Component)
	}
	fmt.Fprintf(&b, "Function: %s\n", function)
	fmt.Fprintf(&b, "Module: %s\n", module)
	b.WriteString(banner + "\n\n")
	return b.String()
}

// ValidateTestcaseID checks a test case ID of any dynamic type. It returns
// the ID unchanged when v is a string that is non-empty after trimming
// whitespace, and an InvalidTestError otherwise.
func ValidateTestcaseID(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		cause := fmt.Sprintf("got %T, want string", v)
		if v == nil {
			cause = "got no value"
		}
		return "", invalidID(cause)
	}
	if strings.TrimSpace(s) == "" {
		return "", invalidID(fmt.Sprintf("got %q (empty after trimming whitespace)", s))
	}
	return s, nil
}

func invalidID(cause string) error {
	return qaerrors.NewInvalidTestError(InvalidIDMessage, cause, `Pass an identifier such as "TC001"`)
}

// UnmarshalJSON decodes a record, rejecting a testcase_id that is missing,
// null, not a JSON string, or blank.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		TestcaseID  any     `json:"testcase_id"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Component   *string `json:"component"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := ValidateTestcaseID(raw.TestcaseID)
	if err != nil {
		return err
	}
	*m = Metadata{
		TestcaseID:  id,
		Description: raw.Description,
		Priority:    raw.Priority,
		Component:   raw.Component,
	}
	return nil
}

// UnmarshalYAML decodes a record, rejecting a testcase_id that is missing,
// null, not a string scalar, or blank. Quoted numbers such as "123" are
// strings and therefore valid.
func (m *Metadata) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		TestcaseID  yaml.Node `yaml:"testcase_id"`
		Description *string   `yaml:"description"`
		Priority    *string   `yaml:"priority"`
		Component   *string   `yaml:"component"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	id, err := ValidateTestcaseID(yamlScalar(&raw.TestcaseID))
	if err != nil {
		return err
	}
	*m = Metadata{
		TestcaseID:  id,
		Description: raw.Description,
		Priority:    raw.Priority,
		Component:   raw.Component,
	}
	return nil
}

// yamlScalar decodes the testcase_id node into a plain Go value. A missing
// node yields nil.
func yamlScalar(n *yaml.Node) any {
	if n.Kind == 0 {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n
	}
	return v
}
