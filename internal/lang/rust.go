package lang

func init() {
	Register(&LanguageSpec{
		Language:       Rust,
		FileExtensions: []string{".rs"},
		FunctionNodeTypes: []string{
			"function_item",
			"function_signature_item",
			"closure_expression",
		},
		ClassNodeTypes: []string{
			"struct_item",
			"enum_item",
			"union_item",
			"trait_item",
			"impl_item",
			"type_item",
		},
		ModuleNodeTypes: []string{"source_file", "mod_item"},
		ScopeNodeTypes: []string{
			"block", "if_expression", "match_expression", "match_arm",
			"for_expression", "while_expression", "loop_expression",
		},
		CallNodeTypes:         []string{"call_expression", "macro_invocation"},
		MemberAccessNodeTypes: []string{"field_expression", "scoped_identifier", "index_expression"},
		AssignmentNodeTypes:   []string{"let_declaration", "assignment_expression"},
		DestructureNodeTypes:  []string{"tuple_pattern", "tuple_struct_pattern", "struct_pattern"},
		ReassignmentNodeTypes: []string{"assignment_expression", "compound_assignment_expr"},

		EnvAccessFunctions: []string{"std::env::var", "env::var"},
	})
}
