// Package adf defines the Atlassian Document Format tree: typed block and
// inline nodes, inline marks, and their JSON shape.
package adf

import "encoding/json"

// NodeType is the `type` discriminator of a Node.
type NodeType string

// Block node types.
const (
	TypeDoc          NodeType = "doc"
	TypeParagraph    NodeType = "paragraph"
	TypeHeading      NodeType = "heading"
	TypeBlockquote   NodeType = "blockquote"
	TypeBulletList   NodeType = "bulletList"
	TypeOrderedList  NodeType = "orderedList"
	TypeListItem     NodeType = "listItem"
	TypeCodeBlock    NodeType = "codeBlock"
	TypeRule         NodeType = "rule"
	TypeTable        NodeType = "table"
	TypeTableRow     NodeType = "tableRow"
	TypeTableHeader  NodeType = "tableHeader"
	TypeTableCell    NodeType = "tableCell"
	TypePanel        NodeType = "panel"
	TypeExpand       NodeType = "expand"
	TypeNestedExpand NodeType = "nestedExpand"
	TypeMediaGroup   NodeType = "mediaGroup"
	TypeMediaSingle  NodeType = "mediaSingle"
	TypeMedia        NodeType = "media"
	TypeTaskList     NodeType = "taskList"
	TypeTaskItem     NodeType = "taskItem"
	TypeDecisionList NodeType = "decisionList"
	TypeDecisionItem NodeType = "decisionItem"
	TypeBlockCard    NodeType = "blockCard"
)

// Inline node types.
const (
	TypeText       NodeType = "text"
	TypeHardBreak  NodeType = "hardBreak"
	TypeDate       NodeType = "date"
	TypeEmoji      NodeType = "emoji"
	TypeInlineCard NodeType = "inlineCard"
	TypeMention    NodeType = "mention"
	TypeStatus     NodeType = "status"
)

// TypeUnknown marks a node whose type tag was not recognised on decode.
const TypeUnknown NodeType = "unknown"

var knownNodeTypes = map[NodeType]bool{
	TypeDoc: true, TypeParagraph: true, TypeHeading: true, TypeBlockquote: true,
	TypeBulletList: true, TypeOrderedList: true, TypeListItem: true, TypeCodeBlock: true,
	TypeRule: true, TypeTable: true, TypeTableRow: true, TypeTableHeader: true,
	TypeTableCell: true, TypePanel: true, TypeExpand: true, TypeNestedExpand: true,
	TypeMediaGroup: true, TypeMediaSingle: true, TypeMedia: true, TypeTaskList: true,
	TypeTaskItem: true, TypeDecisionList: true, TypeDecisionItem: true, TypeBlockCard: true,
	TypeText: true, TypeHardBreak: true, TypeDate: true, TypeEmoji: true,
	TypeInlineCard: true, TypeMention: true, TypeStatus: true,
}

// Known reports whether t is one of the node types this package models.
func (t NodeType) Known() bool {
	return knownNodeTypes[t]
}

// Inline reports whether nodes of type t live inside text-bearing blocks.
func (t NodeType) Inline() bool {
	switch t {
	case TypeText, TypeHardBreak, TypeDate, TypeEmoji, TypeInlineCard, TypeMention, TypeStatus:
		return true
	}
	return false
}

// Container reports whether nodes of type t always carry a content array
// on the wire, even when it is empty.
func (t NodeType) Container() bool {
	switch t {
	case TypeRule, TypeMedia, TypeBlockCard:
		return false
	}
	return t.Known() && !t.Inline()
}

// DocVersion is the only schema version emitted for a doc node.
const DocVersion = 1

// Node is one element of the document tree. Which fields are meaningful
// depends on Type; unused fields stay at their zero value and are omitted
// from JSON.
type Node struct {
	Type    NodeType `json:"type"`
	Version int      `json:"version,omitempty"` // doc only
	Attrs   *Attrs   `json:"attrs,omitempty"`
	Content []Node   `json:"content,omitempty"`
	Text    string   `json:"text,omitempty"` // text only
	Marks   []Mark   `json:"marks,omitempty"`

	// Raw holds the undecoded JSON of an unknown node so it re-encodes
	// unchanged.
	Raw json.RawMessage `json:"-"`
}

// Attrs is the union of every per-type attribute field. JSON names follow
// the ADF schema; each node type only populates its own subset.
type Attrs struct {
	// heading
	Level int `json:"level,omitempty"`
	// codeBlock
	Language string `json:"language,omitempty"`
	// orderedList
	Order *int `json:"order,omitempty"`

	// table
	IsNumberColumnEnabled bool   `json:"isNumberColumnEnabled,omitempty"`
	Layout                string `json:"layout,omitempty"` // table, mediaSingle
	Width                 int    `json:"width,omitempty"`  // table, media
	DisplayMode           string `json:"displayMode,omitempty"`

	// tableHeader, tableCell
	Background string `json:"background,omitempty"`
	Colspan    int    `json:"colspan,omitempty"`
	Colwidth   []int  `json:"colwidth,omitempty"`
	Rowspan    int    `json:"rowspan,omitempty"`

	// expand, nestedExpand
	Title string `json:"title,omitempty"`
	// panel
	PanelType PanelType `json:"panelType,omitempty"`

	// media
	ID         string    `json:"id,omitempty"` // media, mention
	Collection string    `json:"collection,omitempty"`
	MediaType  MediaKind `json:"type,omitempty"`
	Alt        string    `json:"alt,omitempty"`
	Height     int       `json:"height,omitempty"`

	// date
	Timestamp string `json:"timestamp,omitempty"`
	// emoji
	ShortName string `json:"shortName,omitempty"`
	// emoji, mention, status
	Text string `json:"text,omitempty"`
	// inlineCard, blockCard
	URL string `json:"url,omitempty"`

	// mention
	AccessLevel AccessLevel `json:"accessLevel,omitempty"`
	UserType    UserType    `json:"userType,omitempty"`

	// status
	Color string `json:"color,omitempty"`

	// status, taskList, taskItem, decisionList, decisionItem
	LocalID string `json:"localId,omitempty"`
	// taskItem, decisionItem
	State string `json:"state,omitempty"`

	// blockCard
	Datasource *Datasource `json:"datasource,omitempty"`
}

// PanelType selects the visual style of a panel.
type PanelType string

const (
	PanelInfo    PanelType = "info"
	PanelNote    PanelType = "note"
	PanelWarning PanelType = "warning"
	PanelSuccess PanelType = "success"
	PanelError   PanelType = "error"
)

// MediaKind distinguishes stored files from external links in a media node.
type MediaKind string

const (
	MediaFile MediaKind = "file"
	MediaLink MediaKind = "link"
)

// AccessLevel of a mentioned user.
type AccessLevel string

const (
	AccessNone        AccessLevel = "NONE"
	AccessSite        AccessLevel = "SITE"
	AccessApplication AccessLevel = "APPLICATION"
)

// UserType of a mentioned user.
type UserType string

const (
	UserDefault UserType = "DEFAULT"
	UserSpecial UserType = "SPECIAL"
	UserApp     UserType = "APP"
)

// Task and decision states.
const (
	TaskTodo        = "TODO"
	TaskDone        = "DONE"
	DecisionDecided = "DECIDED"
)

// DefaultStatusColor is used when a status chip carries no colour.
const DefaultStatusColor = "neutral"

// Datasource describes the query behind a block card.
type Datasource struct {
	ID         string           `json:"id"`
	Parameters DatasourceParams `json:"parameters"`
	Views      []DatasourceView `json:"views"`
}

// DatasourceParams are the query parameters of a datasource.
type DatasourceParams struct {
	CloudID string `json:"cloudId"`
	JQL     string `json:"jql"`
}

// DatasourceView is one rendering of a datasource.
type DatasourceView struct {
	Type       string             `json:"type"`
	Properties DatasourceViewProp `json:"properties"`
}

// DatasourceViewProp lists the columns shown by a view.
type DatasourceViewProp struct {
	Columns []DatasourceColumn `json:"columns"`
}

// DatasourceColumn is one column key of a view.
type DatasourceColumn struct {
	Key string `json:"key"`
}
