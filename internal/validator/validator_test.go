package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

func TestValidateTable_Catalog(t *testing.T) {
	for _, p := range catalog.Default().List() {
		t.Run(p.Name, func(t *testing.T) {
			assert.NoError(t, validator.ValidateTable(p.Table.Rules(), p.Start))
		})
	}
}

func TestValidateTable_Issues(t *testing.T) {
	one := domain.Mark(catalog.One)

	tests := []struct {
		name     string
		rules    []domain.Rule[string, catalog.Bit]
		start    string
		expected []string
	}{
		{
			name: "shadowed rule",
			rules: table.NewBuilder[string, catalog.Bit]().
				On("A", one).Right().Goto("A").
				On("A", one).Left().Accept("H").
				OnBlank("A").Accept("H").
				Build().Rules(),
			start:    "A",
			expected: []string{"rule 2: (A, 1) is shadowed by rule 1"},
		},
		{
			name: "unreachable state",
			rules: table.NewBuilder[string, catalog.Bit]().
				OnBlank("A").Accept("B").
				OnBlank("B").Right().Goto("A").
				Build().Rules(),
			start:    "A",
			expected: []string{"state 'B' is unreachable from 'A'"},
		},
		{
			name: "dead end",
			rules: table.NewBuilder[string, catalog.Bit]().
				OnBlank("A").Right().Goto("Lost").
				Build().Rules(),
			start:    "A",
			expected: []string{"state 'Lost' is entered but has no rules"},
		},
		{
			name:     "empty table",
			rules:    nil,
			start:    "A",
			expected: []string{"start state 'A' has no rules"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTable(tt.rules, tt.start)
			require.Error(t, err)

			var verr *validator.Error
			require.True(t, errors.As(err, &verr))
			got := make([]string, len(verr.Issues))
			for i, issue := range verr.Issues {
				got[i] = issue.String()
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &validator.Error{Issues: []validator.Issue{{Rule: -1, Message: "a"}, {Rule: 0, Message: "b"}}}
	assert.Equal(t, "found 2 errors:\n- a\n- rule 1: b", err.Error())
}
