package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
	"mercator-hq/folio/pkg/journal"
)

type violationView struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func violationViews(v designErrors.Violations) []violationView {
	views := make([]violationView, 0, len(v))
	for _, e := range v {
		views = append(views, violationView{Code: string(e.Code), Message: e.Error()})
	}
	return views
}

// decisionView is the result of check, insert, move and remove.
type decisionView struct {
	Document   string          `json:"document"`
	Operation  string          `json:"operation"`
	Container  string          `json:"container"`
	Slot       string          `json:"slot"`
	Candidate  string          `json:"candidate"`
	Allowed    bool            `json:"allowed"`
	Applied    bool            `json:"applied"`
	Violations []violationView `json:"violations,omitempty"`
}

func (d decisionView) RenderText(w io.Writer) error {
	verdict := "allowed"
	switch {
	case d.Applied:
		verdict = "applied"
	case !d.Allowed:
		verdict = "refused"
	}
	if _, err := fmt.Fprintf(w, "%s: %s %s into %s.%s\n", verdict, d.Operation, d.Candidate, d.Container, d.Slot); err != nil {
		return err
	}
	for _, v := range d.Violations {
		if _, err := fmt.Fprintf(w, "  %s\n", v.Message); err != nil {
			return err
		}
	}
	return nil
}

// auditView is the result of auditing a whole document.
type auditView struct {
	Document   string          `json:"document"`
	Valid      bool            `json:"valid"`
	Violations []violationView `json:"violations,omitempty"`
}

func (a auditView) RenderText(w io.Writer) error {
	if a.Valid {
		_, err := fmt.Fprintf(w, "%s: ok\n", a.Document)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %d violation(s)\n", a.Document, len(a.Violations)); err != nil {
		return err
	}
	for _, v := range a.Violations {
		if _, err := fmt.Fprintf(w, "  %s\n", v.Message); err != nil {
			return err
		}
	}
	return nil
}

// treeNode is one element of the printed tree.
type treeNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name,omitempty"`
	Extends    string         `json:"extends,omitempty"`
	Virtual    bool           `json:"virtual,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Slots      []treeSlot     `json:"slots,omitempty"`
}

type treeSlot struct {
	Slot     string     `json:"slot"`
	Contents []treeNode `json:"contents"`
}

func newTreeNode(e *model.Element, withIDs bool) treeNode {
	n := treeNode{
		Type:       e.TypeName(),
		Name:       e.Name,
		Extends:    e.ExtendsName,
		Virtual:    e.Virtual,
		Properties: e.LocalProperties(),
	}
	if withIDs {
		n.ID = e.ID
	}
	if len(n.Properties) == 0 {
		n.Properties = nil
	}
	for _, slot := range e.SlotIDs() {
		contents := e.Contents(slot)
		if len(contents) == 0 {
			continue
		}
		s := treeSlot{Slot: slot}
		for _, child := range contents {
			s.Contents = append(s.Contents, newTreeNode(child, withIDs))
		}
		n.Slots = append(n.Slots, s)
	}
	return n
}

func (n treeNode) RenderText(w io.Writer) error {
	return n.render(w, 0)
}

func (n treeNode) render(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)

	line := indent + n.Type
	if n.Name != "" {
		line += " " + strconv.Quote(n.Name)
	}
	if n.ID != "" {
		line += " (" + n.ID + ")"
	}
	if n.Extends != "" {
		line += " extends " + n.Extends
	}
	if n.Virtual {
		line += " virtual"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, s := range n.Slots {
		if _, err := fmt.Fprintf(w, "%s  %s:\n", indent, s.Slot); err != nil {
			return err
		}
		for _, child := range s.Contents {
			if err := child.render(w, depth+2); err != nil {
				return err
			}
		}
	}
	return nil
}

// typeList lists dictionary element types.
type typeList []*meta.ElementDefn

func (l typeList) Header() []string {
	return []string{"TYPE", "EXTENDS", "ABSTRACT", "SLOTS"}
}

func (l typeList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, d := range l {
		var slots []string
		for _, s := range d.Slots() {
			slots = append(slots, s.ID)
		}
		rows = append(rows, []string{d.Name(), d.Extends(), strconv.FormatBool(d.IsAbstract()), strings.Join(slots, ",")})
	}
	return rows
}

// typeView describes one dictionary element type.
type typeView struct {
	Name     string     `json:"name"`
	Extends  string     `json:"extends,omitempty"`
	Abstract bool       `json:"abstract"`
	Slots    []slotView `json:"slots,omitempty"`
}

type slotView struct {
	ID       string   `json:"id"`
	Multiple bool     `json:"multiple"`
	Content  []string `json:"content"`
}

func newTypeView(d *meta.ElementDefn) typeView {
	v := typeView{Name: d.Name(), Extends: d.Extends(), Abstract: d.IsAbstract()}
	for _, s := range d.Slots() {
		v.Slots = append(v.Slots, slotView{ID: s.ID, Multiple: s.Multiple, Content: s.ContentTypes})
	}
	return v
}

func (v typeView) Header() []string {
	return []string{"SLOT", "CARDINALITY", "CONTENT"}
}

func (v typeView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Slots))
	for _, s := range v.Slots {
		cardinality := "single"
		if s.Multiple {
			cardinality = "multiple"
		}
		rows = append(rows, []string{s.ID, cardinality, strings.Join(s.Content, ",")})
	}
	return rows
}

func (v typeView) RenderText(w io.Writer) error {
	title := v.Name
	if v.Extends != "" {
		title += " extends " + v.Extends
	}
	if v.Abstract {
		title += " (abstract)"
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(v.Slots) == 0 {
		_, err := fmt.Fprintln(w, "  no slots")
		return err
	}
	for _, row := range v.Rows() {
		if _, err := fmt.Fprintf(w, "  %-12s %-8s %s\n", row[0], row[1], row[2]); err != nil {
			return err
		}
	}
	return nil
}

// recordList lists journal records.
type recordList []*journal.Record

func (l recordList) Header() []string {
	return []string{"TIME", "OPERATION", "RESULT", "ELEMENT", "CONTAINER", "SLOT", "CODES"}
}

func (l recordList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		result := "allowed"
		if !r.Allowed {
			result = "refused"
		}
		element := r.ElementType
		if r.ElementName != "" {
			element += " " + strconv.Quote(r.ElementName)
		}
		container := r.ContainerType
		if container == "" {
			container = r.ContainerID
		}
		rows = append(rows, []string{
			r.Time.Local().Format(time.DateTime),
			r.Operation,
			result,
			element,
			container,
			r.Slot,
			strings.Join(r.Codes, ","),
		})
	}
	return rows
}
