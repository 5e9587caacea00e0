/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import "errors"

// nolint
var (
	ErrManifestTemplateRequired = errors.New("--manifest-template (or " + envManifestTemplate + ") must be specified")
	ErrStackRequired            = errors.New("--stack (or " + envStack + ") must be specified")
	ErrServiceRequired          = errors.New("--service (or " + envService + ") must be specified")
)
