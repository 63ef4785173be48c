// Package rules discovers rule files in the shared rules directory.
//
// A rule file is any direct child of the directory whose name ends with
// the configured suffix (".mdc" by default). There is no recursion and no
// content inspection: the name alone decides.
package rules
