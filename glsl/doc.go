// Package glsl generates GLSL fragment shaders from verified cerlib
// shading ASTs.
//
// The backend targets two profiles: desktop GLSL (#version 140) and
// GLSL ES (#version 300 es). Output follows the sprite pipeline's wire
// conventions: the interpolated inputs cer_v2f_Color and cer_v2f_UV,
// the implicit SpriteImage sampler and the cer_OutColor fragment
// output. Shader parameters become uniforms; the entry point becomes
// void main().
package glsl
