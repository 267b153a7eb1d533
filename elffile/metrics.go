package elffile

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	OpenErrors prometheus.Counter
	NoteErrors prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OpenErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elfseg_open_errors_total",
			Help: "Total number of errors while decoding elf file headers",
		}),
		NoteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elfseg_note_errors_total",
			Help: "Total number of note segments that failed to decode",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.OpenErrors,
			m.NoteErrors,
		)
	}

	return m
}

func (m *Metrics) openError() {
	if m == nil {
		return
	}
	m.OpenErrors.Inc()
}

func (m *Metrics) noteError() {
	if m == nil {
		return
	}
	m.NoteErrors.Inc()
}
