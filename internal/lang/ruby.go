package lang

func init() {
	Register(&LanguageSpec{
		Language:          Ruby,
		FileExtensions:    []string{".rb"},
		ClassNodeTypes:    []string{"class", "module"},
		ModuleNodeTypes:   []string{"program"},
		FunctionNodeTypes: []string{"method"},
		ScopeNodeTypes: []string{
			"do_block", "block", "if", "unless", "while", "until", "for", "case",
			"when", "begin", "rescue",
		},
		CallNodeTypes:         []string{"call", "command", "command_call", "element_reference"},
		MemberAccessNodeTypes: []string{"element_reference", "call"},
		AssignmentNodeTypes:   []string{"assignment"},
		DestructureNodeTypes:  []string{"left_assignment_list", "destructured_left_assignment"},
		ReassignmentNodeTypes: []string{"assignment", "operator_assignment"},

		EnvContainerTokens: []string{"ENV"},
		// A call node's "method" field is only the trailing name (`fetch`),
		// so ENV.fetch matches through the callee-less text-prefix path.
		EnvAccessFunctions:      []string{"ENV.fetch"},
		EnvAccessMemberPatterns: []string{"ENV"},
	})
}
