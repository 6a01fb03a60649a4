package lang

func init() {
	Register(&LanguageSpec{
		Language:       TypeScript,
		FileExtensions: []string{".ts", ".mts", ".cts"},
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"function_signature",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"class",
			"abstract_class_declaration",
			"enum_declaration",
			"interface_declaration",
			"type_alias_declaration",
			"internal_module",
		},
		ModuleNodeTypes: []string{"program"},
		ScopeNodeTypes: []string{
			"statement_block", "for_statement", "for_in_statement", "while_statement",
			"do_statement", "if_statement", "try_statement", "catch_clause", "switch_statement",
		},
		CallNodeTypes:         []string{"call_expression"},
		MemberAccessNodeTypes: []string{"member_expression", "subscript_expression"},
		AssignmentNodeTypes:   []string{"variable_declarator", "assignment_expression"},
		DestructureNodeTypes:  []string{"object_pattern", "array_pattern"},
		ReassignmentNodeTypes: []string{"assignment_expression", "augmented_assignment_expression"},

		EnvContainerTokens:      []string{"process.env"},
		EnvAccessMemberPatterns: []string{"process.env"},
	})
}
