package lang

func init() {
	Register(&LanguageSpec{
		Language:       C,
		FileExtensions: []string{".c"},
		FunctionNodeTypes: []string{
			"function_definition",
		},
		ClassNodeTypes:  []string{"struct_specifier", "enum_specifier", "union_specifier"},
		ModuleNodeTypes: []string{"translation_unit"},
		ScopeNodeTypes: []string{
			"compound_statement", "if_statement", "for_statement", "while_statement",
			"do_statement", "switch_statement", "case_statement",
		},
		CallNodeTypes:         []string{"call_expression"},
		MemberAccessNodeTypes: []string{"field_expression", "subscript_expression"},
		AssignmentNodeTypes:   []string{"init_declarator", "assignment_expression"},
		ReassignmentNodeTypes: []string{"assignment_expression"},

		EnvAccessFunctions: []string{"getenv"},
	})
}
