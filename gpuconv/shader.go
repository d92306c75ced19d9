package gpuconv

// A single fragment pass samples the source RGBA texture and writes BT.601
// limited-range luma or chroma depending on which plane is currently bound
// as the draw target; there is no true compute shader at GL 4.1 core, so
// the "compute pass" is emulated as two full-screen draws (§4.9).
const vertexShaderSource = `
#version 410 core
layout(location = 0) in vec2 vertPosition;
out vec2 uv;
void main() {
    uv = (vertPosition + 1.0) * 0.5;
    gl_Position = vec4(vertPosition, 0.0, 1.0);
}
` + "\x00"

const lumaFragmentShaderSource = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D srcRGBA;
void main() {
    vec3 c = texture(srcRGBA, uv).rgb;
    float y = 0.257*c.r + 0.504*c.g + 0.098*c.b + 0.0625;
    fragColor = vec4(y, 0.0, 0.0, 1.0);
}
` + "\x00"

const chromaFragmentShaderSource = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D srcRGBA;
uniform vec2 texelSize;
void main() {
    // NV12 chroma is subsampled 2x2; average the 2x2 block this UV texel covers.
    vec3 acc = vec3(0.0);
    for (int dy = 0; dy < 2; dy++) {
        for (int dx = 0; dx < 2; dx++) {
            vec2 offset = vec2(float(dx), float(dy)) * texelSize * 0.5;
            acc += texture(srcRGBA, uv + offset).rgb;
        }
    }
    vec3 c = acc * 0.25;
    float u = -0.148*c.r - 0.291*c.g + 0.439*c.b + 0.5;
    float v =  0.439*c.r - 0.368*c.g - 0.071*c.b + 0.5;
    fragColor = vec4(u, v, 0.0, 1.0);
}
` + "\x00"
