package waitlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlankFieldViolations(t *testing.T) {
	t.Run("whitespace-only fields are reported per field", func(t *testing.T) {
		violations := blankFieldViolations(&RegisterRequest{
			FirstName: "   ",
			LastName:  "\t",
			Email:     "ada@example.com",
		})

		assert.Len(t, violations, 2)

		fields := []string{violations[0].Field, violations[1].Field}
		assert.Contains(t, fields, "firstName")
		assert.Contains(t, fields, "lastName")
		for _, v := range violations {
			assert.Equal(t, "This field is required", v.Message)
		}
	})

	t.Run("populated fields yield no violations", func(t *testing.T) {
		violations := blankFieldViolations(&RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		})

		assert.Empty(t, violations)
	})
}
