package email_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"intakeflow/internal/domain"
	"intakeflow/internal/email"
)

func TestRenderDigest(t *testing.T) {
	d := domain.ReviewDigest{
		SourceFile: "scan<1>.pdf",
		Counts: map[domain.ReviewType]int{
			domain.ReviewTypeModified:       1,
			domain.ReviewTypeDuplicateEmail: 2,
		},
		Total: 3,
	}

	msg := email.RenderDigest(d, "https://app.example.com/")

	assert.Equal(t, "3 fiche(s) à vérifier", msg.Subject)
	assert.Contains(t, msg.Text, "- Doublon - Mail : 2\n- Modifié : 1\n")
	assert.NotContains(t, msg.Text, "Erreur - Numéro")
	assert.Contains(t, msg.Text, "https://app.example.com/reviews")
	assert.Contains(t, msg.HTML, "scan&lt;1&gt;.pdf")
	assert.True(t, strings.Index(msg.HTML, "Doublon - Mail") < strings.Index(msg.HTML, "Modifié"))
}
