package llm

import "fmt"

// coverLetterPromptTemplate is the fixed prompt sent with every job
// description. The model is instructed to preserve bracketed placeholders so
// the letter package can substitute applicant details afterward.
const coverLetterPromptTemplate = `Generate a professional cover letter based on this job description. The cover letter must be exactly 1 page, maintain a formal, enthusiastic, and polished tone, and preserve placeholders like [Organization Name], [Email Address], [Phone Number], and [Name]. Additionally the output must contain only the letter content, with no introductory or explanatory text. Do not include phrases like "Here is..." or "Below is...".

Structure the letter into 4 main paragraphs:
1. Opening paragraph: Explain how the applicant found out about the job and express interest in applying.
2. Second paragraph: Introduce the applicant briefly, mention a relevant event or experience, and highlight key skills or attributes.
3. Third paragraph: Share a past experience (e.g., volunteering), describe technical and soft skills, and express confidence in their suitability for the role.
4. Final paragraph: Add a closing paragraph inviting the reader for a personal meeting and providing the E-Mail address for further communication.

The salutation should begin with 'Dear Hiring Team,'. The closing should be 'Best regards,' followed by '[Your Name]'.

Ensure to use placeholders like [Your Name], [Your Address], [Your City, Postal Code], [Your Email Address], [Your Phone Number], [Your LinkedIn Profile], [Date], [Hiring Manager Name], [Hiring Manager Title], [Company Name], [Company Address], [Company City, Postal Code], [Job Title] where appropriate, and do not fill them in.

Job Description:

%s`

// buildCoverLetterPrompt fills the prompt template with the job description.
func buildCoverLetterPrompt(jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(coverLetterPromptTemplate, jobDescription)
	return prompt
}
