package lang

func init() {
	Register(&LanguageSpec{
		Language:           PHP,
		FileExtensions:     []string{".php"},
		IdentifierNodeType: "variable_name",
		FunctionNodeTypes: []string{
			"function_static_declaration",
			"anonymous_function",
			"function_definition",
			"arrow_function",
			"method_declaration",
		},
		ClassNodeTypes: []string{
			"trait_declaration",
			"enum_declaration",
			"interface_declaration",
			"class_declaration",
		},
		ModuleNodeTypes: []string{"program"},
		ScopeNodeTypes: []string{
			"compound_statement", "if_statement", "for_statement", "foreach_statement",
			"while_statement", "switch_statement", "case_statement", "try_statement", "catch_clause",
		},
		CallNodeTypes: []string{
			"member_call_expression",
			"scoped_call_expression",
			"function_call_expression",
			"nullsafe_member_call_expression",
		},
		MemberAccessNodeTypes: []string{"member_access_expression", "subscript_expression"},
		AssignmentNodeTypes:   []string{"assignment_expression"},
		DestructureNodeTypes:  []string{"list_literal", "array_creation_expression"},
		ReassignmentNodeTypes: []string{"assignment_expression", "augmented_assignment_expression"},

		EnvContainerTokens:      []string{"$_ENV", "$_SERVER"},
		EnvAccessFunctions:      []string{"getenv", "env"},
		EnvAccessMemberPatterns: []string{"$_ENV", "$_SERVER"},
	})
}
