package loader

import (
	"slices"

	"github.com/docfinder/docfinder/pkg/core"
)

// Synonym lists the source column spellings accepted for one canonical
// attribute, highest priority first.
type Synonym struct {
	Attribute core.Attribute
	Columns   []string
}

// Synonyms is the column synonym table. The first spelling present in a
// source header wins; any later spelling for the same attribute is dropped.
var Synonyms = []Synonym{
	{core.AttrName, []string{"Dr. Name", "Doctor Name", "Name", "Doctor"}},
	{core.AttrSpecialization, []string{"Specialization", "Speciality", "Department", "Field"}},
	{core.AttrHospital, []string{"Hospital", "Clinic", "Center", "Institution"}},
	{core.AttrDistrict, []string{"District", "Location", "City", "Region"}},
	{core.AttrPhone, []string{"Phone", "Contact", "Phone Number", "Mobile"}},
	{core.AttrExperience, []string{"Experience", "Years", "Years of Experience"}},
	{core.AttrRating, []string{"Rating", "Score", "Review Score"}},
}

// RawRecord holds the reconciled cells of one row, keyed by attribute.
// Cells are still raw text; Normalize turns them into a core.Doctor.
type RawRecord map[core.Attribute]string

// Table is a reconciled source: every record carries all canonical attributes.
type Table struct {
	Source  string
	Columns map[core.Attribute]string // attribute -> source column, absent when defaulted
	Records []RawRecord
}

// resolveColumns maps each canonical attribute to the header index that
// supplies it. A column already named after the attribute is used when no
// synonym matched.
func resolveColumns(header []string) map[core.Attribute]int {
	resolved := make(map[core.Attribute]int, len(core.Attributes))
	for _, syn := range Synonyms {
		for _, col := range syn.Columns {
			if idx := slices.Index(header, col); idx >= 0 {
				resolved[syn.Attribute] = idx
				break
			}
		}
	}
	for _, attr := range core.Attributes {
		if _, ok := resolved[attr]; ok {
			continue
		}
		if idx := slices.Index(header, string(attr)); idx >= 0 {
			resolved[attr] = idx
		}
	}
	return resolved
}

// Reconcile maps a source onto the canonical attributes. Unmapped columns
// are dropped and unresolved attributes take their default in every row.
func Reconcile(src *SourceTable) *Table {
	resolved := resolveColumns(src.Header)

	table := &Table{
		Source:  src.Path,
		Columns: make(map[core.Attribute]string, len(resolved)),
		Records: make([]RawRecord, 0, len(src.Rows)),
	}
	for attr, idx := range resolved {
		table.Columns[attr] = src.Header[idx]
	}

	for _, row := range src.Rows {
		rec := make(RawRecord, len(core.Attributes))
		for _, attr := range core.Attributes {
			if idx, ok := resolved[attr]; ok {
				rec[attr] = row[idx]
			} else {
				rec[attr] = core.DefaultValue(attr)
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table
}
