package generator

import (
	"strconv"
	"strings"

	"github.com/prepgen/backend/internal/models"
)

const promptTemplate = `You are an expert {exam} question paper setter with deep knowledge of {subject}.

**Task**: Generate {num_questions} high-quality Multiple Choice Questions (MCQs).

**Specifications**:
- Subject: {subject}
- Chapters: {chapters}
- Difficulty Level: {difficulty}
- Exam Standard: {exam} (Indian competitive exam)

**Quality Requirements**:
1. Questions must be exam-level difficulty and conceptually accurate
2. Each question must test a specific concept or application
3. All 4 options should be plausible to avoid obvious elimination
4. Solutions must be clear, concise, and educationally valuable
5. Avoid ambiguous wording or trick questions

**Strict Format** (Follow EXACTLY):

Q1. [Clear, specific question text]
A) [First option]
B) [Second option]
C) [Third option]
D) [Fourth option]
Answer: [A/B/C/D]
Solution: [Brief explanation of why the answer is correct]

Q2. [Next question...]
A) [option]
B) [option]
C) [option]
D) [option]
Answer: [A/B/C/D]
Solution: [explanation]

**Important Notes**:
- Number questions sequentially (Q1, Q2, Q3, ...)
- Use EXACTLY the format shown above
- Include all 4 options (A, B, C, D) for every question
- Provide the correct answer letter (A, B, C, or D)
- Keep solutions under 100 words
- Do not include any extra text, headers, or commentary

Generate {num_questions} questions now:
`

var difficultyModifiers = map[models.Difficulty]string{
	models.DifficultyEasy: `
Focus on:
- Basic concepts and definitions
- Direct application of formulas
- Recall-based questions
- Fundamental understanding
`,
	models.DifficultyMedium: `
Focus on:
- Application of concepts
- Multi-step problem solving
- Conceptual understanding
- Standard exam-level difficulty
`,
	models.DifficultyHard: `
Focus on:
- Complex problem solving
- Integration of multiple concepts
- Advanced applications
- Analytical and critical thinking
- Tricky but fair scenarios
`,
}

// fewShotExamples are keyed by subject name. Subjects without an entry
// get no worked example in their prompt.
var fewShotExamples = map[string]string{
	"Physics": `
**Example Question**:

Q1. A particle moves in a straight line with constant acceleration. If it covers 40 m in the 5th second of its motion, what is its acceleration? (Assume initial velocity = 0)
A) 4 m/s²
B) 8 m/s²
C) 16 m/s²
D) 20 m/s²
Answer: B
Solution: Distance covered in nth second: sₙ = u + (a/2)(2n-1). Here u=0, n=5, s=40. So 40 = (a/2)(9) = 4.5a, giving a ≈ 8.89 m/s². The closest answer is 8 m/s².
`,
	"Chemistry": `
**Example Question**:

Q1. Which of the following has the highest lattice energy?
A) NaCl
B) NaF
C) NaBr
D) NaI
Answer: B
Solution: Lattice energy is inversely proportional to the sum of ionic radii. F⁻ has the smallest ionic radius among the halides, so NaF has the highest lattice energy.
`,
	"Mathematics": `
**Example Question**:

Q1. What is the derivative of f(x) = x³ + 2x² - 5x + 7?
A) 3x² + 4x - 5
B) 3x² + 2x - 5
C) x² + 4x - 5
D) 3x² + 4x + 5
Answer: A
Solution: Using power rule: d/dx(x³) = 3x², d/dx(2x²) = 4x, d/dx(-5x) = -5, d/dx(7) = 0. Therefore f'(x) = 3x² + 4x - 5.
`,
	"Biology": `
**Example Question**:

Q1. During which phase of the cell cycle does DNA replication occur?
A) G1 phase
B) S phase
C) G2 phase
D) M phase
Answer: B
Solution: DNA replication occurs during the S (Synthesis) phase of interphase. G1 and G2 are gap phases for cell growth, and M phase is for mitosis.
`,
}

// BuildPrompt renders the generation prompt for one subject batch,
// appending the difficulty focus block and a subject example when one
// exists.
func BuildPrompt(exam, subject, chapters string, numQuestions int, difficulty models.Difficulty) string {
	replacer := strings.NewReplacer(
		"{exam}", exam,
		"{subject}", subject,
		"{chapters}", chapters,
		"{num_questions}", strconv.Itoa(numQuestions),
		"{difficulty}", string(difficulty),
	)
	prompt := replacer.Replace(promptTemplate)

	if modifier, ok := difficultyModifiers[difficulty]; ok {
		prompt += "\n" + modifier
	}
	if example, ok := fewShotExamples[subject]; ok {
		prompt += "\n" + example
	}
	return prompt
}
