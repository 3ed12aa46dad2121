package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordSample(t *testing.T) {
	c := samplesCounter.WithLabelValues("light", OutcomeAccepted)
	before := testutil.ToFloat64(c)

	RecordSample("light", OutcomeAccepted)
	RecordSample("light", OutcomeAccepted)

	require.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestRecordLogEntry_EmptyBucket(t *testing.T) {
	c := logEntriesCounter.WithLabelValues("none")
	before := testutil.ToFloat64(c)

	RecordLogEntry("")

	require.Equal(t, before+1, testutil.ToFloat64(c))
}
