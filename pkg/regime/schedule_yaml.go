package regime

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// scheduleDoc is the YAML shape for scripted scenarios:
//
//	repeat: false
//	segments:
//	  - regime: bull
//	    duration: 100
//	  - regime: bear
//	    duration: 50
//	    transition: 10
//	    drift: -0.01
//	    volatility: 0.04
type scheduleDoc struct {
	Repeat   bool         `yaml:"repeat"`
	Segments []segmentDoc `yaml:"segments"`
}

type segmentDoc struct {
	Regime     string           `yaml:"regime"`
	Duration   int              `yaml:"duration"`
	Transition int              `yaml:"transition"`
	Drift      *decimal.Decimal `yaml:"drift"`
	Volatility *decimal.Decimal `yaml:"volatility"`
}

// ParseSchedule reads a scenario document. Drift and volatility override the
// regime's defaults only when both are present; a lone override keeps the
// default for the missing half.
func ParseSchedule(data []byte) (Schedule, error) {
	var doc scheduleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Schedule{}, fmt.Errorf("parse schedule: %w", err)
	}

	segments := make([]Segment, 0, len(doc.Segments))
	for _, sd := range doc.Segments {
		seg := Segment{
			Regime:     Regime(sd.Regime),
			Duration:   sd.Duration,
			Transition: sd.Transition,
		}
		if sd.Drift != nil || sd.Volatility != nil {
			p := seg.Regime.Params()
			if sd.Drift != nil {
				p.Drift = *sd.Drift
			}
			if sd.Volatility != nil {
				p.Volatility = *sd.Volatility
			}
			seg.Params = &p
		}
		segments = append(segments, seg)
	}

	return NewSchedule(segments, doc.Repeat)
}
