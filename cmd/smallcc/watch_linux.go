//go:build linux

package main

import (
	"fmt"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// watchLoop recompiles the source file every time it is written. It blocks
// until an unrecoverable watch error occurs; compile failures are reported
// by the compile callback itself and do not stop the loop.
func watchLoop(srcPath string, compile func() int) error {
	absPath, err := filepath.Abs(srcPath)
	if err != nil {
		return err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return fmt.Errorf("inotify init: %w", err)
	}
	defer unix.Close(fd)

	mask := uint32(unix.IN_MODIFY | unix.IN_CLOSE_WRITE)
	if _, err := unix.InotifyAddWatch(fd, absPath, mask); err != nil {
		return fmt.Errorf("watch %s: %w", absPath, err)
	}

	fmt.Printf("watching %s\n", srcPath)
	compile()

	buf := make([]byte, unix.SizeofInotifyEvent*16)
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("inotify read: %w", err)
		}

		changed := false
		reAdd := false
		var offset int
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)
			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) != 0 {
				changed = true
			}
			// Editors that replace the file drop the watch.
			if event.Mask&unix.IN_IGNORED != 0 {
				reAdd = true
			}
		}
		if reAdd {
			if _, err := unix.InotifyAddWatch(fd, absPath, mask); err != nil {
				return fmt.Errorf("rewatch %s: %w", absPath, err)
			}
			changed = true
		}
		if changed {
			// Let the write settle before reading the file back.
			time.Sleep(50 * time.Millisecond)
			fmt.Printf("rebuilding %s\n", srcPath)
			compile()
		}
	}
}
