// Package exams holds the read-only syllabus and marking-scheme tables.
// Both are process-wide configuration, never mutated after start, and
// therefore safe to read from any goroutine.
package exams

import "sort"

var syllabus = map[string]map[string][]string{
	"JEE": {
		"Physics": {
			"Kinematics",
			"Laws of Motion",
			"Work Energy Power",
			"Rotational Motion",
			"Gravitation",
			"Properties of Matter",
			"Thermodynamics",
			"Kinetic Theory of Gases",
			"Oscillations",
			"Waves",
			"Electrostatics",
			"Current Electricity",
			"Magnetic Effects of Current",
			"Electromagnetic Induction",
			"Alternating Current",
			"Electromagnetic Waves",
			"Optics",
			"Dual Nature of Matter",
			"Atoms and Nuclei",
			"Semiconductor Devices",
			"Communication Systems",
		},
		"Chemistry": {
			"Atomic Structure",
			"Chemical Bonding",
			"States of Matter",
			"Thermodynamics",
			"Chemical Equilibrium",
			"Ionic Equilibrium",
			"Redox Reactions",
			"Electrochemistry",
			"Chemical Kinetics",
			"Surface Chemistry",
			"Periodic Table",
			"Hydrogen",
			"s-Block Elements",
			"p-Block Elements",
			"d-Block Elements",
			"f-Block Elements",
			"Coordination Compounds",
			"Metallurgy",
			"Organic Chemistry Basics",
			"Hydrocarbons",
			"Organic Compounds with Functional Groups",
			"Biomolecules",
			"Polymers",
			"Chemistry in Everyday Life",
		},
		"Mathematics": {
			"Sets and Relations",
			"Functions",
			"Trigonometry",
			"Complex Numbers",
			"Quadratic Equations",
			"Sequences and Series",
			"Permutations and Combinations",
			"Binomial Theorem",
			"Limits",
			"Continuity",
			"Differentiation",
			"Applications of Derivatives",
			"Integration",
			"Applications of Integrals",
			"Differential Equations",
			"Vectors",
			"3D Geometry",
			"Matrices and Determinants",
			"Probability",
			"Statistics",
			"Mathematical Reasoning",
			"Linear Programming",
		},
	},

	"NEET": {
		"Physics": {
			"Physical World and Measurement",
			"Kinematics",
			"Laws of Motion",
			"Work Energy Power",
			"Rotational Motion",
			"Gravitation",
			"Properties of Solids and Liquids",
			"Thermodynamics",
			"Kinetic Theory of Gases",
			"Oscillations and Waves",
			"Electrostatics",
			"Current Electricity",
			"Magnetic Effects of Current",
			"Magnetism and Matter",
			"Electromagnetic Induction",
			"Alternating Current",
			"Electromagnetic Waves",
			"Optics",
			"Dual Nature of Matter",
			"Atoms and Nuclei",
			"Electronic Devices",
		},
		"Chemistry": {
			"Basic Concepts of Chemistry",
			"Atomic Structure",
			"Chemical Bonding",
			"States of Matter",
			"Thermodynamics",
			"Chemical Equilibrium",
			"Redox Reactions",
			"Hydrogen",
			"s-Block Elements",
			"p-Block Elements",
			"Organic Chemistry Basics",
			"Hydrocarbons",
			"Environmental Chemistry",
			"Solid State",
			"Solutions",
			"Electrochemistry",
			"Chemical Kinetics",
			"Surface Chemistry",
			"d and f Block Elements",
			"Coordination Compounds",
			"Haloalkanes and Haloarenes",
			"Alcohols Phenols and Ethers",
			"Aldehydes Ketones and Carboxylic Acids",
			"Organic Compounds with Nitrogen",
			"Biomolecules",
			"Polymers",
			"Chemistry in Everyday Life",
		},
		"Botany": {
			"The Living World",
			"Biological Classification",
			"Plant Kingdom",
			"Morphology of Flowering Plants",
			"Anatomy of Flowering Plants",
			"Cell Structure and Function",
			"Cell Cycle and Division",
			"Transport in Plants",
			"Mineral Nutrition",
			"Photosynthesis",
			"Respiration in Plants",
			"Plant Growth and Development",
			"Reproduction in Organisms",
			"Sexual Reproduction in Flowering Plants",
			"Principles of Inheritance",
			"Molecular Basis of Inheritance",
			"Strategies for Enhancement in Food Production",
			"Organisms and Populations",
			"Ecosystem",
			"Biodiversity and Conservation",
			"Environmental Issues",
		},
		"Zoology": {
			"Animal Kingdom",
			"Structural Organization in Animals",
			"Biomolecules",
			"Digestion and Absorption",
			"Breathing and Exchange of Gases",
			"Body Fluids and Circulation",
			"Excretory Products and Elimination",
			"Locomotion and Movement",
			"Neural Control and Coordination",
			"Chemical Coordination",
			"Human Reproduction",
			"Reproductive Health",
			"Evolution",
			"Human Health and Disease",
			"Microbes in Human Welfare",
			"Biotechnology Principles",
			"Biotechnology Applications",
		},
	},

	"UPSC": {
		"History": {
			"Ancient India",
			"Medieval India",
			"Modern India",
			"Indian National Movement",
			"Art and Culture",
			"World History",
		},
		"Geography": {
			"Physical Geography",
			"Indian Geography",
			"World Geography",
			"Climatology",
			"Economic Geography",
			"Environmental Geography",
		},
		"Polity": {
			"Indian Constitution",
			"Union and State Government",
			"Judiciary",
			"Local Governance",
			"Constitutional Bodies",
			"Rights Issues",
		},
		"Economy": {
			"National Income",
			"Money and Banking",
			"Fiscal Policy",
			"External Sector",
			"Agriculture",
			"Industry and Infrastructure",
			"Poverty and Employment",
		},
	},

	"CSAT": {
		"Comprehension": {
			"Reading Comprehension",
			"Interpersonal Skills",
			"Communication",
		},
		"Quantitative Aptitude": {
			"Number System",
			"Percentages",
			"Ratio and Proportion",
			"Averages",
			"Time and Work",
			"Data Interpretation",
		},
		"Logical Reasoning": {
			"Analytical Ability",
			"Syllogisms",
			"Series and Patterns",
			"Direction Sense",
			"Decision Making",
		},
	},
}

// Exams returns the known exam identifiers, sorted.
func Exams() []string {
	out := make([]string, 0, len(syllabus))
	for exam := range syllabus {
		out = append(out, exam)
	}
	sort.Strings(out)
	return out
}

// Subjects returns the subjects of an exam, sorted, or nil for an
// unknown exam.
func Subjects(exam string) []string {
	subjects, ok := syllabus[exam]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(subjects))
	for s := range subjects {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Chapters returns the full chapter list for a subject, or nil when the
// exam or subject is unknown. Callers must not mutate the result.
func Chapters(exam, subject string) []string {
	return syllabus[exam][subject]
}

func IsValidExam(exam string) bool {
	_, ok := syllabus[exam]
	return ok
}

func IsValidSubject(exam, subject string) bool {
	_, ok := syllabus[exam][subject]
	return ok
}

func IsValidChapter(exam, subject, chapter string) bool {
	for _, ch := range syllabus[exam][subject] {
		if ch == chapter {
			return true
		}
	}
	return false
}
