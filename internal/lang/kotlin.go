package lang

func init() {
	Register(&LanguageSpec{
		Language:           Kotlin,
		FileExtensions:     []string{".kt", ".kts"},
		IdentifierNodeType: "simple_identifier",
		FunctionNodeTypes: []string{
			"function_declaration",
			"secondary_constructor",
			"anonymous_function",
			"lambda_literal",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"object_declaration",
			"companion_object",
		},
		ModuleNodeTypes: []string{"source_file"},
		ScopeNodeTypes: []string{
			"statements", "if_expression", "for_statement", "while_statement",
			"do_while_statement", "when_expression", "when_entry", "try_expression", "catch_block",
		},
		CallNodeTypes:         []string{"call_expression"},
		MemberAccessNodeTypes: []string{"navigation_expression", "indexing_expression"},
		AssignmentNodeTypes:   []string{"property_declaration", "assignment"},
		DestructureNodeTypes:  []string{"multi_variable_declaration"},
		ReassignmentNodeTypes: []string{"assignment"},

		EnvAccessFunctions: []string{"System.getenv"},
	})
}
