package collect

import (
	"context"
	"iter"
	"time"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.Source = (*StaticSource)(nil)

// StaticSource yields a fixed list of publications regardless of host.
type StaticSource struct {
	Documents []cencenelec.RawDocument
}

// NewStaticSource returns the publications currently listed for the
// CEN/CENELEC portal.
func NewStaticSource() *StaticSource {
	return &StaticSource{Documents: StandardDocuments()}
}

// Discover yields the source's documents in order.
func (s *StaticSource) Discover(ctx context.Context, _ string) iter.Seq2[cencenelec.RawDocument, error] {
	return func(yield func(cencenelec.RawDocument, error) bool) {
		for _, doc := range s.Documents {
			if err := ctx.Err(); err != nil {
				yield(cencenelec.RawDocument{}, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// StandardDocuments returns the road traffic signal publications.
func StandardDocuments() []cencenelec.RawDocument {
	return []cencenelec.RawDocument{
		{
			Title:    "Use of LED signal heads in road traffic signal systems",
			Abstract: "This Technical Specification considers only newly manufactured and installed signal controllers and signal heads for road traffic applications, using appropriate cabling. This Technical Specification considers only LED optical units with 200 mm and 300 mm roundels as standardised in EN 12368. It does not consider configurations such as an arrow or a pedestrian symbol, created by specifically positioned patterns of LEDs. This Technical Specification does not consider railway signalling applications.",
			PubDate:  date(2007, time.August, 3),
		},
		{
			Title:    "Road traffic signal systems - Electromagnetic compatibility",
			Abstract: "This product standard for EMC requirements applies to road traffic signal systems. The range of products included within the scope of this European Standard are road traffic signal systems and devices including for example signal heads, signalling devices and traffic signs, controller and housing, supports, interconnections, traffic detectors, monitoring equipment, electrical supply. Road traffic signal systems operating in conjunction with other systems e.g. public lighting, railway systems should also comply with the respective standard and should not reduce the safety of all the equipment. Central Office equipment is excluded from this standard. Items with a radio-communication function should also refer to the European ETSI standards.",
			PubDate:  date(2012, time.June, 29),
		},
		{
			Title:    "Road traffic signal systems",
			Abstract: "This document specifies requirements for Road Traffic Signal Systems, including their development, design, testing, installation and maintenance. In particular, it forms the electrotechnical part of the following two standards issued by CEN: - EN 12368, Traffic control equipment - Signal heads; - EN 12675, Traffic signal controllers - Functional safety requirements. Each of these standards above will be used with this standard either singly or together to define an operational equipment or system. This will be achieved by using the electrotechnical methods and testing defined in this standard. Where Road Traffic Signal Systems are to be used with other systems, e.g. public lighting or railway signalling and communication, this document will be used with any other respective standard(s) for the other associated systems to ensure that overall safety is not compromised. This document is applicable to traffic signal control equipment permanently and temporarily installed, and portable traffic control equipment, with the exception of portable traffic signal equipment only capable of controlling alternate / shuttle working lanes (as further defined in 3.2.10).",
			PubDate:  date(2018, time.September, 28),
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
