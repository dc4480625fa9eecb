package question

// Seed returns the bundled fallback questions used when the question
// service is unreachable. The set is small and fixed; the session client
// walks it by position without exclusion tracking.
func Seed() []Question {
	return []Question{
		{
			Question: "A client with heart failure is prescribed furosemide (Lasix). Which assessment finding should the nurse prioritize monitoring in this client?",
			Options: map[string]string{
				"A": "Blood glucose levels",
				"B": "Potassium levels",
				"C": "White blood cell count",
				"D": "Thyroid function tests",
			},
			CorrectAnswer: "B",
			Explanation:   "The correct answer is B: Potassium levels. Furosemide is a loop diuretic that can cause potassium depletion, leading to hypokalemia. Monitoring potassium levels is crucial to prevent potential complications such as cardiac dysrhythmias. Blood glucose levels, white blood cell count, and thyroid function tests are not directly impacted by furosemide administration in the context of heart failure.",
			Category:      "Pharmacology",
			Subcategory:   "Diuretics",
			Difficulty:    "medium",
			NCLEXCategory: "Safe and Effective Care Environment",
		},
		{
			Question: "A nurse is caring for a client receiving continuous enteral tube feedings. Which position is most appropriate to reduce the risk of aspiration?",
			Options: map[string]string{
				"A": "Supine with the bed flat",
				"B": "Left lateral with the bed flat",
				"C": "Head of the bed elevated 30 to 45 degrees",
				"D": "Trendelenburg position",
			},
			CorrectAnswer: "C",
			Explanation:   "The correct answer is C: elevating the head of the bed 30 to 45 degrees uses gravity to keep feeding solution in the stomach and reduces the risk of reflux and aspiration. A flat or head-down position increases aspiration risk during continuous feedings.",
			Category:      "Fundamentals",
			Subcategory:   "Nutrition",
			Difficulty:    "easy",
			NCLEXCategory: "Physiological Integrity",
		},
		{
			Question: "A client is prescribed warfarin therapy. Which laboratory value should the nurse monitor to evaluate the effectiveness of this medication?",
			Options: map[string]string{
				"A": "Activated partial thromboplastin time (aPTT)",
				"B": "International normalized ratio (INR)",
				"C": "Platelet count",
				"D": "Hemoglobin level",
			},
			CorrectAnswer: "B",
			Explanation:   "The correct answer is B: the INR is the standard measure of warfarin's anticoagulant effect, with a usual therapeutic range of 2 to 3. The aPTT monitors heparin therapy, while platelet count and hemoglobin do not reflect warfarin effectiveness.",
			Category:      "Pharmacology",
			Subcategory:   "Anticoagulants",
			Difficulty:    "medium",
			NCLEXCategory: "Physiological Integrity",
		},
	}
}
