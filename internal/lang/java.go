package lang

func init() {
	Register(&LanguageSpec{
		Language:          Java,
		FileExtensions:    []string{".java"},
		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"enum_declaration",
			"annotation_type_declaration",
			"record_declaration",
		},
		ModuleNodeTypes: []string{"program"},
		ScopeNodeTypes: []string{
			"block", "if_statement", "for_statement", "enhanced_for_statement", "while_statement",
			"do_statement", "switch_expression", "switch_block_statement_group",
			"try_statement", "catch_clause",
		},
		CallNodeTypes:         []string{"method_invocation"},
		MemberAccessNodeTypes: []string{"field_access", "array_access"},
		AssignmentNodeTypes:   []string{"assignment_expression", "variable_declarator"},
		ReassignmentNodeTypes: []string{"assignment_expression"},

		EnvAccessFunctions: []string{"System.getenv", "System.getProperty"},
	})
}
