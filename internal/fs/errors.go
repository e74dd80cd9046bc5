package fs

import "fmt"

type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input %s does not exist", e.Path)
}

type NoJSONFilesError struct {
	Dir string
}

func (e *NoJSONFilesError) Error() string {
	return fmt.Sprintf("directory %s contains no %s files", e.Dir, JSONExt)
}
