package domain

// AnomalyKind labels a per-record recovery made by a core transform.
type AnomalyKind string

const (
	AnomalyUnparseableTime   AnomalyKind = "unparseable_time"
	AnomalyUnknownDay        AnomalyKind = "unknown_day"
	AnomalyInvalidCoordinate AnomalyKind = "invalid_coordinate"
)

// AnomalyRecorder observes recoveries. Implementations must not block and
// must not influence the result of the transform that reported them.
type AnomalyRecorder interface {
	RecordAnomaly(kind AnomalyKind)
}

// NopRecorder discards anomalies.
type NopRecorder struct{}

func (NopRecorder) RecordAnomaly(AnomalyKind) {}
