// Package extract pulls the numbered self-assessment and external-assessment
// questions out of a questionnaire transcript.
package extract

// DefaultSectionCount is the number of self-assessment sections in the
// questionnaire.
const DefaultSectionCount = 6

// Section is one self-assessment block with its rating scale.
type Section struct {
	Number    int      `json:"number"`
	Scale     string   `json:"scale"`
	Questions []string `json:"questions"`
}

// Result holds everything extracted from one document.
type Result struct {
	Sections           []Section `json:"sections"`
	SelfAssessment     []string  `json:"self_assessment"`
	ExternalAssessment []string  `json:"external_assessment"`
}

// Extract prepares text and collects the questions of sections
// 1..sectionCount followed by the external-assessment questions. Missing
// regions yield empty lists, never an error.
func Extract(text string, sectionCount int) Result {
	text = Prepare(text)

	res := Result{
		Sections:           []Section{},
		SelfAssessment:     []string{},
		ExternalAssessment: []string{},
	}

	for _, seg := range Segments(text, sectionCount) {
		questions := Items(seg.Body)
		res.Sections = append(res.Sections, Section{
			Number:    seg.Number,
			Scale:     Normalize(seg.Scale),
			Questions: questions,
		})
		res.SelfAssessment = append(res.SelfAssessment, questions...)
	}

	if body, ok := External(text); ok {
		res.ExternalAssessment = append(res.ExternalAssessment, Items(body)...)
	}

	return res
}
