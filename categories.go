package scribe

// categories is the fixed, ordered list of clinical topics the extraction is
// organized around. Established once for the process lifetime; never mutated.
var categories = []string{
	"Chief Complaint/Reason for Visit",
	"History of Present Illness (HPI)",
	"Past Medical History",
	"Past Surgical History",
	"Current Medications",
	"Allergies",
	"Family History",
	"Social History",
	"Review of Systems (ROS)",
	"Vital Signs",
	"Physical Examination Findings",
	"Laboratory Results",
	"Imaging Results",
	"Assessment/Clinical Impression",
	"Diagnosis",
	"Treatment Plan",
	"Follow-up Instructions",
	"Referrals",
}

// Categories returns a copy of the clinical category list, preserving order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
