/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghclient

const sampleDiff = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,4 +1,5 @@
 package main
+import "fmt"
 func main() {
-	println("hi")
+	fmt.Println("hi")
 }
diff --git a/go.sum b/go.sum
index 3333333..4444444 100644
--- a/go.sum
+++ b/go.sum
@@ -1,1 +1,4 @@
 github.com/a/b v1.0.0 h1:aaa=
+github.com/c/d v1.0.0 h1:bbb=
+github.com/c/d v1.0.0/go.mod h1:ccc=
+github.com/e/f v0.1.0 h1:ddd=
`
