package lang

func init() {
	Register(&LanguageSpec{
		Language:       Zig,
		FileExtensions: []string{".zig"},
		FunctionNodeTypes: []string{
			"function_declaration",
			"test_declaration",
		},
		ClassNodeTypes:  []string{"struct_declaration", "enum_declaration", "union_declaration"},
		ModuleNodeTypes: []string{"source_file"},
		ScopeNodeTypes: []string{
			"block", "if_statement", "for_statement", "while_statement", "switch_expression",
		},
		CallNodeTypes:         []string{"call_expression", "builtin_function"},
		MemberAccessNodeTypes: []string{"field_expression"},
		AssignmentNodeTypes:   []string{"variable_declaration", "assignment_expression"},
		ReassignmentNodeTypes: []string{"assignment_expression"},

		EnvAccessFunctions: []string{"std.process.getEnvVarOwned", "std.os.getenv", "std.posix.getenv"},
	})
}
