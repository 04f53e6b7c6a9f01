package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/caixa-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "veronica", textutil.Fold("Verônica"))
	assert.Equal(t, "joao da silva", textutil.Fold("João da Silva"))
	assert.Equal(t, "cafe", textutil.Fold("CAFÉ"))
	assert.Equal(t, "", textutil.Fold(""))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, textutil.ContainsFold("Verônica Almeida", "veronica"))
	assert.True(t, textutil.ContainsFold("João", "JOAO"))
	assert.False(t, textutil.ContainsFold("Verônica", "mariana"))
	// needle vacío coincide con cualquier texto (semántica de strings.Contains)
	assert.True(t, textutil.ContainsFold("qualquer", ""))
}
