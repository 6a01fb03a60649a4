package lang

func init() {
	Register(&LanguageSpec{
		Language:       Python,
		FileExtensions: []string{".py"},
		FunctionNodeTypes: []string{
			"function_definition",
		},
		ClassNodeTypes:  []string{"class_definition"},
		ModuleNodeTypes: []string{"module"},
		ScopeNodeTypes: []string{
			"block", "if_statement", "for_statement", "while_statement", "try_statement",
			"except_clause", "with_statement",
			"list_comprehension", "dictionary_comprehension", "set_comprehension", "generator_expression",
		},
		CallNodeTypes:         []string{"call"},
		MemberAccessNodeTypes: []string{"attribute", "subscript"},
		AssignmentNodeTypes:   []string{"assignment"},
		ReassignmentNodeTypes: []string{"assignment", "augmented_assignment"},
		DestructureNodeTypes:  []string{"pattern_list", "tuple_pattern", "list_pattern"},

		EnvContainerTokens:      []string{"os.environ"},
		EnvAccessFunctions:      []string{"os.getenv", "os.environ.get"},
		EnvAccessMemberPatterns: []string{"os.environ"},
	})
}
