package loader

import (
	"testing"

	"github.com/docfinder/docfinder/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_Scenario(t *testing.T) {
	src := &SourceTable{
		Path:   "a.csv",
		Header: []string{"Doctor Name", "Speciality", "Hospital"},
		Rows:   [][]string{{"Dr. A", "Cardiology", "City Hospital"}},
	}

	table := Reconcile(src)
	require.Len(t, table.Records, 1)
	assert.Equal(t, RawRecord{
		core.AttrName:           "Dr. A",
		core.AttrSpecialization: "Cardiology",
		core.AttrHospital:       "City Hospital",
		core.AttrDistrict:       "Unknown District",
		core.AttrPhone:          "Not Available",
		core.AttrExperience:     "Not Specified",
		core.AttrRating:         "4.0",
		core.AttrLanguages:      "Bengali,English",
	}, table.Records[0])
	assert.Equal(t, map[core.Attribute]string{
		core.AttrName:           "Doctor Name",
		core.AttrSpecialization: "Speciality",
		core.AttrHospital:       "Hospital",
	}, table.Columns)
}

func TestReconcile_FirstSynonymWins(t *testing.T) {
	src := &SourceTable{
		Header: []string{"Name", "Dr. Name", "City", "District"},
		Rows:   [][]string{{"second", "first", "Sylhet", "Dhaka"}},
	}

	table := Reconcile(src)
	rec := table.Records[0]
	assert.Equal(t, "first", rec[core.AttrName], "Dr. Name outranks Name")
	assert.Equal(t, "Dhaka", rec[core.AttrDistrict], "District outranks City")
}

func TestReconcile_DropsUnmappedColumns(t *testing.T) {
	src := &SourceTable{
		Header: []string{"Name", "Email", "Fax"},
		Rows:   [][]string{{"Dr. A", "a@example.com", "555"}},
	}

	table := Reconcile(src)
	rec := table.Records[0]
	assert.Len(t, rec, len(core.Attributes))
	for _, attr := range core.Attributes {
		_, ok := rec[attr]
		assert.True(t, ok, "attribute %s missing", attr)
	}
	assert.NotContains(t, rec, core.Attribute("Email"))
}

func TestReconcile_CanonicalColumnNames(t *testing.T) {
	src := &SourceTable{
		Header: []string{"name", "languages", "rating"},
		Rows:   [][]string{{"Dr. A", "English", "3.5"}},
	}

	rec := Reconcile(src).Records[0]
	assert.Equal(t, "Dr. A", rec[core.AttrName])
	assert.Equal(t, "English", rec[core.AttrLanguages])
	assert.Equal(t, "3.5", rec[core.AttrRating])
}

func TestReconcile_NoMatchingColumns(t *testing.T) {
	src := &SourceTable{
		Header: []string{"foo"},
		Rows:   [][]string{{"x"}, {"y"}},
	}

	table := Reconcile(src)
	require.Len(t, table.Records, 2)
	for _, rec := range table.Records {
		for _, attr := range core.Attributes {
			assert.Equal(t, core.DefaultValue(attr), rec[attr])
		}
	}
	assert.Empty(t, table.Columns)
}

func TestSynonyms_CoverEveryAttributeButLanguages(t *testing.T) {
	seen := make(map[core.Attribute]bool)
	for _, syn := range Synonyms {
		assert.False(t, seen[syn.Attribute], "duplicate synonym entry for %s", syn.Attribute)
		seen[syn.Attribute] = true
		assert.NotEmpty(t, syn.Columns)
	}
	for _, attr := range core.Attributes {
		if attr == core.AttrLanguages {
			assert.False(t, seen[attr])
			continue
		}
		assert.True(t, seen[attr], "no synonyms for %s", attr)
	}
}
