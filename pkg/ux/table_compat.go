// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table wraps tablewriter with the string-slice API the commands use.
type Table struct {
	*tablewriter.Table
	headers []string
}

// NewTable creates a left-aligned table writing to w.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{Table: tablewriter.NewTable(w)}
	t.Table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignLeft
	})
	if len(headers) > 0 {
		t.SetHeader(headers)
	}
	return t
}

// SetHeader sets the header row
func (t *Table) SetHeader(headers []string) {
	t.headers = headers
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	t.Table.Header(anyHeaders...)
}

// AppendRow adds a row
func (t *Table) AppendRow(row ...string) {
	_ = t.Table.Append(row)
}
