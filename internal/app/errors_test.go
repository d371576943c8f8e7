package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrQuery_Error(t *testing.T) {
	cause := errors.New(`relation "gold.dim_customers" does not exist`)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "with statement",
			query: testQuery,
			want:  `query error: relation "gold.dim_customers" does not exist (running SELECT * FROM gold.dim_customers)`,
		},
		{
			name:  "without statement",
			query: "",
			want:  `query error: relation "gold.dim_customers" does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ErrQuery{Query: tt.query, Cause: cause}
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, &ErrConnection{Cause: cause}, cause)
	assert.ErrorIs(t, &ErrConfig{Cause: cause}, cause)
	assert.Equal(t, "connection error: boom", (&ErrConnection{Cause: cause}).Error())
	assert.Equal(t, "config error: boom", (&ErrConfig{Cause: cause}).Error())
}
