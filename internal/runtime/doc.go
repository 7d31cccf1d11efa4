// Package runtime builds generator graphs from statements and steps them.
//
// A build happens on a private registry; only a fully successful build is
// published, so a bad statement never disturbs the running graph.
package runtime
