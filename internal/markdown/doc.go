// Package markdown parses the lexicon article dialect: YAML frontmatter for
// player/turn/title metadata, followed by a restricted markdown body where
// [[Target]] and [[alias|Target]] denote citations, //text// denotes
// emphasis, **text** denotes strong emphasis, and a paragraph starting with
// '~' is an author signature. Parsing is pure; citation targets are retained
// as raw strings and resolved later by the corpus resolver.
package markdown
