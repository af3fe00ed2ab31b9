// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package resolve performs host name resolution and reverse lookup through
// the platform resolver. Forward lookups yield a finite, non-restartable
// sequence of addresses whose backing result list is released exactly once,
// whether the sequence is exhausted, abandoned early, or failed.
package resolve
