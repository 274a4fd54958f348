package shader

// The built-in sources are written against GLSL ES 3.00 (the WebGL2 dialect)
// and go through the translator before compilation, so the same text serves
// desktop GL and GLES contexts.

// ─────────────────────────────── Lit objects ────────────────────────────────

const ObjectVertex = `#version 300 es
layout (location = 0) in vec3 in_pos;
layout (location = 1) in vec3 in_normal;
layout (location = 2) in vec2 in_uv;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 frag_pos;
out vec3 frag_normal;
out vec2 frag_uv;

void main() {
    frag_pos = vec3(model * vec4(in_pos, 1.0));
    frag_normal = mat3(transpose(inverse(model))) * in_normal;
    frag_uv = in_uv;
    gl_Position = projection * view * vec4(frag_pos, 1.0);
}
`

// ObjectFragment shades with a spot light. Directional and point lights use
// the same uniforms: directional is 1 for a light without position, and a
// cut-off cosine below -1 disables the cone.
const ObjectFragment = `#version 300 es
precision highp float;

struct Material {
    sampler2D diffuse_map;
    sampler2D specular_map;
    float specular_strength;
};

struct Light {
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float constant;
    float linear;
    float quadratic;
};

struct SpotLight {
    vec3 pos;
    vec3 dir;
    float cut_off;
    float outer_cut_off;
    int directional;
    Light light;
};

in vec3 frag_pos;
in vec3 frag_normal;
in vec2 frag_uv;
out vec4 frag_color;

uniform vec3 camera_pos;
uniform Material material;
uniform SpotLight light;

void main() {
    vec3 base = texture(material.diffuse_map, frag_uv).rgb;
    vec3 spec_map = texture(material.specular_map, frag_uv).rgb;

    vec3 to_light = light.directional == 1 ? normalize(-light.dir) : normalize(light.pos - frag_pos);
    vec3 normal = normalize(frag_normal);

    vec3 ambient = light.light.ambient * base;
    vec3 diffuse = light.light.diffuse * max(dot(normal, to_light), 0.0) * base;

    vec3 view_dir = normalize(camera_pos - frag_pos);
    vec3 reflect_dir = reflect(-to_light, normal);
    float spec = pow(max(dot(view_dir, reflect_dir), 0.0), material.specular_strength);
    vec3 specular = light.light.specular * spec * spec_map;

    float theta = dot(to_light, normalize(-light.dir));
    float epsilon = max(light.cut_off - light.outer_cut_off, 0.0001);
    float intensity = clamp((theta - light.outer_cut_off) / epsilon, 0.0, 1.0);

    float attenuation = 1.0;
    if (light.directional == 0) {
        float dist = length(light.pos - frag_pos);
        attenuation = 1.0 / (light.light.constant + light.light.linear * dist + light.light.quadratic * dist * dist);
    }

    frag_color = vec4(ambient * attenuation + (diffuse + specular) * intensity * attenuation, 1.0);
}
`

// ─────────────────────────────────── Lamp ───────────────────────────────────

const LampVertex = `#version 300 es
layout (location = 0) in vec3 in_pos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(in_pos, 1.0);
}
`

const LampFragment = `#version 300 es
precision mediump float;
out vec4 frag_color;
uniform vec3 lamp_color;
void main() { frag_color = vec4(lamp_color, 1.0); }
`

// ─────────────────────────────────── Text ───────────────────────────────────

// TextVertex takes (x, y, u, v) per vertex in screen pixels.
const TextVertex = `#version 300 es
layout (location = 0) in vec4 in_vertex;
out vec2 frag_uv;
uniform mat4 projection;
void main() {
    gl_Position = projection * vec4(in_vertex.xy, 0.0, 1.0);
    frag_uv = in_vertex.zw;
}
`

// TextFragment samples single-channel glyph coverage from the red channel.
const TextFragment = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 frag_color;
uniform sampler2D glyph;
uniform vec3 text_color;
void main() {
    float coverage = texture(glyph, frag_uv).r;
    frag_color = vec4(text_color, coverage);
}
`
