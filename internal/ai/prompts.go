package ai

import (
	"fmt"
	"strings"

	"resume-builder/internal/resume"
)

func summaryPrompt(info resume.PersonalInfo, experiences []resume.Experience) string {
	location := info.Location
	if location == "" {
		location = "Not specified"
	}
	lines := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		end := exp.EndDate
		if end == "" {
			end = "Present"
		}
		lines = append(lines, fmt.Sprintf("- %s at %s (%s - %s)", exp.Position, exp.Company, exp.StartDate, end))
	}
	return `Generate an ATS-optimized professional summary for a resume based on the following information:

Personal Information:
- Name: ` + info.FirstName + ` ` + info.LastName + `
- Location: ` + location + `

Work Experience:
` + strings.Join(lines, "\n") + `

Please write a compelling 2-3 sentence professional summary that:
1. Uses industry-standard keywords and terminology
2. Highlights quantifiable achievements and results
3. Is ATS-friendly (no special characters, clear formatting)
4. Demonstrates value proposition to employers
5. Includes relevant skills and expertise
6. Is specific and impactful

Make it professional, keyword-rich, and optimized for Applicant Tracking Systems.`
}

func improveBulletPrompt(bullet, hint string) string {
	return `Improve this resume bullet point to be ATS-optimized and high-scoring:

Original bullet point: "` + bullet + `"

Context: ` + hint + `

Please rewrite this bullet point to:
1. Start with a strong action verb (managed, developed, implemented, etc.)
2. Include specific metrics, percentages, or quantifiable results
3. Highlight the impact or outcome for the business
4. Use industry-standard keywords and terminology
5. Be ATS-friendly (no special characters, clear formatting)
6. Keep it concise (1-2 lines maximum)
7. Focus on achievements rather than responsibilities

Return only the improved bullet point, no additional text.`
}

func tailorPrompt(r resume.Resume, jobDescription string) string {
	var first, last string
	if r.PersonalInfo != nil {
		first, last = r.PersonalInfo.FirstName, r.PersonalInfo.LastName
	}
	roles := make([]string, 0, len(r.Experiences))
	for _, exp := range r.Experiences {
		roles = append(roles, exp.Position+" at "+exp.Company)
	}
	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, s.Name)
	}
	return `Analyze this resume against the job description and provide ATS-optimization suggestions:

Job Description:
` + jobDescription + `

Resume Summary:
- Name: ` + first + ` ` + last + `
- Experience: ` + strings.Join(roles, ", ") + `
- Skills: ` + strings.Join(skills, ", ") + `

Please provide comprehensive ATS optimization suggestions:
1. Missing keywords from the job description that should be added
2. Suggestions for improving the professional summary to match job requirements
3. Recommendations for highlighting relevant experience and achievements
4. Skills that should be emphasized or added
5. ATS score improvement recommendations
6. Industry-specific terminology to include

Format your response as a JSON object with the following structure:
{
  "missingKeywords": ["keyword1", "keyword2"],
  "summarySuggestions": "detailed suggestion text for ATS optimization",
  "experienceRecommendations": "recommendation text for highlighting relevant experience",
  "skillEmphasis": ["skill1", "skill2"],
  "atsScore": "estimated ATS score (1-100)",
  "improvementAreas": ["area1", "area2"],
  "industryKeywords": ["keyword1", "keyword2"]
}`
}

// userData is pretty-printed JSON.
func generateResumePrompt(userData, jobDescription string) string {
	target := ""
	if jobDescription != "" {
		target = "Target Job Description:\n" + jobDescription
	}
	return `Generate a complete ATS-optimized resume based on the following user data:

User Data:
` + userData + `

` + target + `

Please generate a complete resume with the following sections:
1. Professional Summary (2-3 sentences, ATS-optimized)
2. Work Experience (with improved bullet points for each role)
3. Skills (organized by category, with relevant keywords)
4. Education (if provided)
5. Projects (if provided)

Requirements:
- Use industry-standard keywords and terminology
- Include quantifiable achievements and metrics
- Be ATS-friendly (no special characters, clear formatting)
- Optimize for high ATS scores
- Use strong action verbs
- Focus on achievements rather than responsibilities
- Include relevant keywords from job description if provided

Format your response as a JSON object with the following structure:
{
  "professionalSummary": "optimized summary text",
  "workExperience": [
    {
      "company": "company name",
      "position": "position title",
      "duration": "start date - end date",
      "bulletPoints": ["improved bullet point 1", "improved bullet point 2"]
    }
  ],
  "skills": {
    "technical": ["skill1", "skill2"],
    "soft": ["skill1", "skill2"],
    "certifications": ["cert1", "cert2"]
  },
  "education": "education details",
  "projects": "project details if applicable",
  "atsScore": "estimated ATS score (1-100)",
  "keywords": ["keyword1", "keyword2"],
  "recommendations": "additional optimization recommendations"
}`
}
