// Package shading provides the front end of the cerlib shading
// language.
//
// The shading language is a small C-family language for writing sprite
// fragment shaders. A shader is a function named "main" that returns
// the final sprite color.
//
// # Components
//
// The shading package consists of several components:
//
//   - Lexer: Tokenizes shader source code into tokens
//   - Parser: Parses tokens into an AST (Abstract Syntax Tree)
//   - Verify: Resolves names and types and checks semantic rules
//   - Optimize: Removes declarations the shader can never reach
//
// # Usage
//
// To parse and verify a shader:
//
//	source := `
//	Vector4 main() {
//	    return sample(sprite_image, sprite_uv) * sprite_color;
//	}
//	`
//
//	tokens, err := shading.Lex(source, "sprite.shd", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ast, err := shading.Parse(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := shading.Verify(ast); err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Features
//
//   - Full lexical analysis with multi-character token assembly
//   - Struct, constant, shader parameter and function declarations
//   - Scalar, vector, matrix, image and array types
//   - Range-based for loops, if/else chains, ternary expressions
//   - Vector constructors, swizzles and intrinsic functions
//   - Constant folding and dead code elimination
package shading
