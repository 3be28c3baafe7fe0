package metricsvc

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-apply/core"
)

func TestMetrics_Persisted(t *testing.T) {
	m := New()
	m.Persisted(core.ProfileKey, nil)
	m.Persisted(core.ProfileKey, nil)
	m.Persisted(core.ProfileKey, errors.New("quota exceeded"))
	m.Persisted(core.ProgramsKey, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.persists.WithLabelValues(core.ProfileKey, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persists.WithLabelValues(core.ProfileKey, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persists.WithLabelValues(core.ProgramsKey, "ok")))
}

func TestMetrics_Exported(t *testing.T) {
	m := New()
	m.Exported("profile", nil)
	m.Exported("application", errors.New("boom"))

	expected := `
# HELP masomo_pdf_exports_total PDF exports by kind and result.
# TYPE masomo_pdf_exports_total counter
masomo_pdf_exports_total{kind="application",result="error"} 1
masomo_pdf_exports_total{kind="profile",result="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "masomo_pdf_exports_total"))
}
