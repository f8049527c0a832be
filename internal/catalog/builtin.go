package catalog

import "time"

// Builtin returns the hard-coded catalog used whenever the configured
// provider fails. A fresh slice is returned on every call.
func Builtin() []Assessment {
	return []Assessment{
		goFundamentals(),
		sqlFundamentals(),
		systemDesign(),
		gitWorkflow(),
	}
}

func goFundamentals() Assessment {
	return Assessment{
		ID:           "go-fundamentals",
		SkillID:      "go",
		Name:         "Go Fundamentals",
		Category:     "Programming Languages",
		Difficulty:   LevelIntermediate,
		TimeLimit:    10 * time.Minute,
		PassingScore: 70,
		Questions: []Question{
			{
				ID:          "go-1",
				Prompt:      "Which statement about a nil map is true?",
				Explanation: "Reading from a nil map returns the zero value; writing to it panics.",
				Points:      1,
				Body: MultipleChoice{
					Options: []string{
						"Reading and writing both panic",
						"Reading returns the zero value, writing panics",
						"Reading panics, writing allocates the map",
						"Both operations allocate the map",
					},
					Correct: []string{"Reading returns the zero value, writing panics"},
				},
			},
			{
				ID:          "go-2",
				Prompt:      "A send on an unbuffered channel blocks until a receiver is ready.",
				Explanation: "Unbuffered channels synchronize sender and receiver.",
				Points:      1,
				Body:        TrueFalse{Correct: true},
			},
			{
				ID:          "go-3",
				Prompt:      "Which of these types can be used as map keys?",
				Explanation: "Map keys must be comparable. Slices, maps and functions are not.",
				Points:      2,
				Body: MultipleChoice{
					Options: []string{"string", "[]byte", "struct{ X int }", "map[string]int", "[4]int"},
					Correct: []string{"string", "struct{ X int }", "[4]int"},
				},
			},
			{
				ID:          "go-4",
				Prompt:      "Write a function Sum(xs []int) int that returns the sum of xs.",
				Explanation: "A range loop accumulating into a local is the idiomatic form.",
				Points:      3,
				Body: Coding{
					Language:  "go",
					Starter:   "func Sum(xs []int) int {\n}\n",
					Reference: "func Sum(xs []int) int {\n\ttotal := 0\n\tfor _, x := range xs {\n\t\ttotal += x\n\t}\n\treturn total\n}\n",
				},
			},
			{
				ID:          "go-5",
				Prompt:      "A goroutine leak is reported in production. How do you find it?",
				Explanation: "Goroutine profiles from net/http/pprof show where goroutines are parked.",
				Points:      2,
				Body: Scenario{
					Context: "A service's memory grows steadily and runtime.NumGoroutine climbs with every request.",
					Rubric:  "Capture a goroutine profile, find the blocked call site, and make sure every goroutine has a cancellation path via context or channel close.",
				},
			},
		},
	}
}

func sqlFundamentals() Assessment {
	return Assessment{
		ID:           "sql-fundamentals",
		SkillID:      "sql",
		Name:         "SQL Fundamentals",
		Category:     "Data",
		Difficulty:   LevelBeginner,
		TimeLimit:    8 * time.Minute,
		PassingScore: 60,
		Questions: []Question{
			{
				ID:          "sql-1",
				Prompt:      "Which clause filters rows after aggregation?",
				Explanation: "WHERE filters input rows, HAVING filters groups.",
				Points:      1,
				Body: MultipleChoice{
					Options: []string{"WHERE", "HAVING", "GROUP BY", "ORDER BY"},
					Correct: []string{"HAVING"},
				},
			},
			{
				ID:          "sql-2",
				Prompt:      "A LEFT JOIN returns only rows that have a match in both tables.",
				Explanation: "That describes an INNER JOIN. LEFT JOIN keeps every row of the left table.",
				Points:      1,
				Body:        TrueFalse{Correct: false},
			},
			{
				ID:          "sql-3",
				Prompt:      "Write a query returning the number of orders per customer_id from table orders.",
				Explanation: "Group by the customer and count rows.",
				Points:      2,
				Body: Coding{
					Language:  "sql",
					Starter:   "SELECT ",
					Reference: "SELECT customer_id, COUNT(*) FROM orders GROUP BY customer_id",
				},
			},
			{
				ID:          "sql-4",
				Prompt:      "NULL = NULL evaluates to true.",
				Explanation: "Comparisons with NULL yield NULL. Use IS NULL.",
				Points:      1,
				Body:        TrueFalse{Correct: false},
			},
		},
	}
}

func systemDesign() Assessment {
	return Assessment{
		ID:           "system-design-basics",
		SkillID:      "system-design",
		Name:         "System Design Basics",
		Category:     "Architecture",
		Difficulty:   LevelAdvanced,
		TimeLimit:    15 * time.Minute,
		PassingScore: 70,
		Questions: []Question{
			{
				ID:          "sd-1",
				Prompt:      "Which techniques reduce read load on a primary database?",
				Explanation: "Caches and read replicas both absorb reads. Sharding spreads writes too, but a write-ahead log does not reduce reads.",
				Points:      2,
				Body: MultipleChoice{
					Options: []string{"Read replicas", "A cache in front of the database", "A larger write-ahead log", "Disabling indexes"},
					Correct: []string{"Read replicas", "A cache in front of the database"},
				},
			},
			{
				ID:          "sd-2",
				Prompt:      "An idempotent API operation can be retried safely without changing the outcome.",
				Explanation: "Idempotency means repeated calls have the same effect as one.",
				Points:      1,
				Body:        TrueFalse{Correct: true},
			},
			{
				ID:          "sd-3",
				Prompt:      "Design a URL shortener handling 10k writes/s and 1M reads/s.",
				Explanation: "Reads dominate, so cache aggressively and keep key generation collision-free.",
				Points:      3,
				Body: Scenario{
					Context: "Short codes must be unique, redirects must be fast, and links never expire.",
					Rubric:  "Key generation without collisions, a key-value store for the mapping, a read-through cache or CDN for redirects, and horizontal scaling of stateless front ends.",
				},
			},
			{
				ID:          "sd-4",
				Prompt:      "Which consistency model does a typical DNS resolver provide?",
				Explanation: "DNS caches records with TTLs, so updates propagate eventually.",
				Points:      1,
				Body: MultipleChoice{
					Options: []string{"Linearizable", "Sequential", "Eventual", "Strict serializable"},
					Correct: []string{"Eventual"},
				},
			},
		},
	}
}

func gitWorkflow() Assessment {
	return Assessment{
		ID:           "git-workflow",
		SkillID:      "git",
		Name:         "Git Workflow",
		Category:     "Tooling",
		Difficulty:   LevelBeginner,
		TimeLimit:    5 * time.Minute,
		PassingScore: 60,
		Questions: []Question{
			{
				ID:          "git-1",
				Prompt:      "Which command rewrites the most recent commit?",
				Explanation: "commit --amend replaces the tip commit.",
				Points:      1,
				Body: MultipleChoice{
					Options: []string{"git commit --amend", "git revert HEAD", "git reset --soft HEAD", "git stash"},
					Correct: []string{"git commit --amend"},
				},
			},
			{
				ID:          "git-2",
				Prompt:      "git revert removes a commit from history.",
				Explanation: "revert adds a new commit that undoes the changes. History is preserved.",
				Points:      1,
				Body:        TrueFalse{Correct: false},
			},
			{
				ID:          "git-3",
				Prompt:      "A teammate force-pushed over your branch. What do you do?",
				Explanation: "The reflog still has your commits.",
				Points:      2,
				Body: Scenario{
					Context: "Your local branch had three commits that are no longer on the remote.",
					Rubric:  "Use git reflog to find the lost commits, restore them on a new branch, and agree on protected branches or --force-with-lease.",
				},
			},
		},
	}
}
