package lang

func init() {
	Register(&LanguageSpec{
		Language:          Go,
		FileExtensions:    []string{".go"},
		FunctionNodeTypes: []string{"function_declaration", "method_declaration"},
		ClassNodeTypes:    []string{"type_spec", "type_alias"},
		ModuleNodeTypes:   []string{"source_file"},
		ScopeNodeTypes: []string{
			"block", "if_statement", "for_statement", "switch_statement", "type_switch_statement",
			"select_statement", "expression_case", "communication_case",
		},
		CallNodeTypes:         []string{"call_expression"},
		MemberAccessNodeTypes: []string{"selector_expression", "index_expression"},
		AssignmentNodeTypes:   []string{"assignment_statement", "short_var_declaration"},
		ReassignmentNodeTypes: []string{"assignment_statement"},

		EnvAccessFunctions: []string{"os.Getenv", "os.LookupEnv"},
	})
}
