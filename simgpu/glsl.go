package simgpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	structRe       = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	memberRe       = regexp.MustCompile(`(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)
	uniformRe      = regexp.MustCompile(`uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)
)

// compileLog returns the diagnostic for source, or "" when it compiles.
// A source fails when it is blank, has no main function, or contains an
// #error directive.
func compileLog(source string) string {
	if strings.TrimSpace(source) == "" {
		return "ERROR: 0:0: '' : empty shader source"
	}
	for i, line := range strings.Split(source, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "#error"); ok {
			return fmt.Sprintf("ERROR: 0:%d: '#error' :%s", i+1, rest)
		}
	}
	if !strings.Contains(source, "main") {
		return "ERROR: 0:0: 'main' : function not defined"
	}
	return ""
}

func stripComments(source string) string {
	return lineCommentRe.ReplaceAllString(blockCommentRe.ReplaceAllString(source, ""), "")
}

type member struct {
	typ, name string
	count     int
}

func parseMembers(body string) []member {
	var members []member
	for _, m := range memberRe.FindAllStringSubmatch(body, -1) {
		count := 0
		if m[3] != "" {
			count, _ = strconv.Atoi(m[3])
		}
		members = append(members, member{typ: m[1], name: m[2], count: count})
	}
	return members
}

// activeUniforms lists the uniform names a program built from sources
// exposes, expanding struct members ("light.light.ambient") and array
// elements ("weights[2]"). Every declared uniform counts as active.
func activeUniforms(sources []string) []string {
	structs := map[string][]member{}
	var uniforms []member
	for _, src := range sources {
		src = stripComments(src)
		for _, m := range structRe.FindAllStringSubmatch(src, -1) {
			structs[m[1]] = parseMembers(m[2])
		}
		for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
			count := 0
			if m[3] != "" {
				count, _ = strconv.Atoi(m[3])
			}
			uniforms = append(uniforms, member{typ: m[1], name: m[2], count: count})
		}
	}

	seen := map[string]bool{}
	var names []string
	var expand func(prefix string, m member, depth int)
	expand = func(prefix string, m member, depth int) {
		var bases []string
		if m.count == 0 {
			bases = []string{prefix + m.name}
		} else {
			for i := 0; i < m.count; i++ {
				bases = append(bases, fmt.Sprintf("%s%s[%d]", prefix, m.name, i))
			}
		}
		for _, base := range bases {
			fields, isStruct := structs[m.typ]
			if !isStruct || depth > 8 {
				if !seen[base] {
					seen[base] = true
					names = append(names, base)
				}
				continue
			}
			for _, f := range fields {
				expand(base+".", f, depth+1)
			}
		}
	}
	for _, u := range uniforms {
		expand("", u, 0)
	}
	return names
}
