// Package fileutil holds file modes shared by the commands that write
// documents.
package fileutil

import "os"

// OwnerReadWrite is the mode for fixed documents, which may describe
// internal APIs.
const OwnerReadWrite os.FileMode = 0o600
