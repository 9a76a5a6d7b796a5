package scoring

import "resume-builder/internal/resume"

func always(Input) bool { return true }

func not(pred func(Input) bool) func(Input) bool {
	return func(in Input) bool { return !pred(in) }
}

var personalInfoSuggestions = []Suggestion{
	{When: not(hasSummary), Text: "Add a professional summary to highlight your key strengths"},
	{When: func(in Input) bool { return !has(in.Info.LinkedIn) }, Text: "Include your LinkedIn profile for professional networking"},
	{
		When: func(in Input) bool {
			return !has(in.Info.GitHub) && hasSkillCategory(resume.CategoryTechnical)(in)
		},
		Text: "Add your GitHub profile to showcase your technical work",
	},
}

var experienceSuggestions = []Suggestion{
	{When: not(hasExperience), Text: "Add your work experience to demonstrate your professional background"},
	{
		When: func(in Input) bool {
			for _, exp := range in.Resume.Experiences {
				if !has(exp.Description) {
					return true
				}
			}
			return false
		},
		Text: "Add detailed descriptions for each role with quantifiable achievements",
	},
	{
		When: func(in Input) bool { return len(in.Resume.Experiences) == 1 },
		Text: "Consider adding more work experience or relevant projects",
	},
}

var skillsSuggestions = []Suggestion{
	{When: not(hasSkills), Text: "Add relevant skills to showcase your competencies"},
	{
		When: func(in Input) bool { return len(in.Resume.Skills) > 0 && len(in.Resume.Skills) < 5 },
		Text: "Add more skills to demonstrate your expertise",
	},
	{
		When: func(in Input) bool { return hasSkills(in) && !hasSkillCategory(resume.CategoryTechnical)(in) },
		Text: "Include technical skills relevant to your field",
	},
	{
		When: func(in Input) bool { return hasSkills(in) && !hasSkillCategory(resume.CategorySoft)(in) },
		Text: "Add soft skills like leadership, communication, and teamwork",
	},
}

var educationSuggestions = []Suggestion{
	{When: not(hasEducation), Text: "Add your educational background"},
	{
		When: func(in Input) bool {
			return hasEducation(in) && anyEducation(in, func(e resume.Education) bool { return !has(e.Degree) })
		},
		Text: "Include degree information for each education entry",
	},
}

var atsSuggestions = []Suggestion{
	{When: not(hasSummary), Text: "Add a professional summary with relevant keywords"},
	{When: func(in Input) bool { return len(in.Resume.Skills) < 5 }, Text: "Include more skills with industry-standard keywords"},
	{When: always, Text: "Use standard section headings (Experience, Education, Skills)"},
	{When: always, Text: "Avoid graphics, tables, or complex formatting"},
}

var formatSuggestions = []Suggestion{
	{When: not(hasFullName), Text: "Ensure your full name is prominently displayed"},
	{When: always, Text: "Use consistent formatting throughout the resume"},
	{When: always, Text: "Keep the resume to 1-2 pages maximum"},
	{When: always, Text: "Use bullet points for easy scanning"},
}
