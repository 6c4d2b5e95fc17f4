//go:build !linux

package main

import "errors"

func watchLoop(srcPath string, compile func() int) error {
	return errors.New("-watch requires Linux (inotify)")
}
