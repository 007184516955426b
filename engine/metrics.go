package engine

import "time"

type GameMetric struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Turns        int
	Measurements int
	Rejected     int // Commands refused as invalid moves
	PeakBranches int
	Winner       int // Player index, -1 if none
}

type Collector interface {
	Start()
	AddTurn(branches int)
	AddMeasurement()
	AddRejected()
	Complete(winner int) GameMetric
}

type collector struct {
	startTime    time.Time
	turns        int
	measurements int
	rejected     int
	peakBranches int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	*m = collector{startTime: time.Now(), peakBranches: 1}
}

func (m *collector) AddTurn(branches int) {
	m.turns++
	m.peakBranches = max(m.peakBranches, branches)
}

func (m *collector) AddMeasurement() {
	m.measurements++
}

func (m *collector) AddRejected() {
	m.rejected++
}

func (m *collector) Complete(winner int) GameMetric {
	end := time.Now()
	return GameMetric{
		StartTime:    m.startTime,
		EndTime:      end,
		Duration:     end.Sub(m.startTime),
		Turns:        m.turns,
		Measurements: m.measurements,
		Rejected:     m.rejected,
		PeakBranches: m.peakBranches,
		Winner:       winner,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                         {}
func (m *dummyCollector) AddTurn(branches int)           {}
func (m *dummyCollector) AddMeasurement()                {}
func (m *dummyCollector) AddRejected()                   {}
func (m *dummyCollector) Complete(winner int) GameMetric { return GameMetric{Winner: winner} }
