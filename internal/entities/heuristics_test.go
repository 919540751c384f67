package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "first line with role term",
			text: "Senior Data Scientist\nJane Doe\nPython, SQL",
			want: []string{"senior data scientist"},
		},
		{
			name: "short first line without role term",
			text: "Jane Doe\nI build backend systems as a developer.",
			want: []string{"jane doe"},
		},
		{
			name: "single word first line falls back to sentences",
			text: "Resume\nSummary of work. Worked as a software developer at Acme. Later a manager.",
			want: []string{"worked as a software developer at acme."},
		},
		{
			name: "long first line with role term up to eight words",
			text: "Lead Platform Engineer for payments and billing teams\nmore",
			want: []string{"lead platform engineer for payments and billing teams"},
		},
		{
			name: "long first line without role term scans sentences",
			text: "Passionate about building reliable systems that serve millions of users every day. Staff engineer today.",
			want: []string{"staff engineer today."},
		},
		{
			name: "no role term anywhere",
			text: "Lorem ipsum dolor sit amet consectetur adipiscing elit sed do.",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitles(tt.text))
		})
	}
}

func TestExtractExperienceYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "plus years", text: "5+ years of Python", want: 5},
		{name: "max of several", text: "3 years Go, 10 yrs Java, 1 year Rust", want: 10},
		{name: "spacing and case", text: "7 + YEARS experience", want: 7},
		{name: "date range", text: "Acme 2015 - 2019, Globex 2019 – 2022", want: 4},
		{name: "explicit years beat ranges", text: "2 years total, 2010-2020", want: 2},
		{name: "reversed range clamps to zero", text: "2021 to 2018", want: 0},
		{name: "no evidence", text: "Senior principal engineer", want: 0},
		{name: "empty", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractExperienceYears(tt.text))
		})
	}
}

func TestIsTechTerm(t *testing.T) {
	assert.True(t, IsTechTerm("Python"))
	assert.True(t, IsTechTerm("  Google Cloud "))
	assert.True(t, IsTechTerm("Node.js"))
	assert.False(t, IsTechTerm("Python Software Foundation"))
	assert.False(t, IsTechTerm("Acme"))
}
