package lang

func init() {
	Register(&LanguageSpec{
		Language:          Lua,
		FileExtensions:    []string{".lua"},
		FunctionNodeTypes: []string{"function_declaration", "function_definition"},
		ModuleNodeTypes:   []string{"chunk"},
		ScopeNodeTypes: []string{
			"do_statement", "if_statement", "for_statement", "for_in_statement",
			"while_statement", "repeat_statement",
		},
		CallNodeTypes:         []string{"function_call"},
		MemberAccessNodeTypes: []string{"dot_index_expression", "bracket_index_expression"},
		// `local x = v` wraps an assignment_statement; both kinds are
		// listed so the bare `x = v` form matches too.
		AssignmentNodeTypes:   []string{"assignment_statement", "variable_declaration"},
		ReassignmentNodeTypes: []string{"assignment_statement"},

		EnvAccessFunctions: []string{"os.getenv"},
	})
}
