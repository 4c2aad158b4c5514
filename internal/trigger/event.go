// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// DescribeEvent summarizes an invocation event for the log. Unknown or
// malformed payloads are reported as such and never cause a failure.
func DescribeEvent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "empty event"
	}

	var s3Event events.S3Event
	if err := json.Unmarshal(raw, &s3Event); err == nil && len(s3Event.Records) > 0 {
		r := s3Event.Records[0]
		desc := fmt.Sprintf("s3 %s s3://%s/%s", r.EventName, r.S3.Bucket.Name, r.S3.Object.Key)
		if n := len(s3Event.Records); n > 1 {
			desc += fmt.Sprintf(" (+%d more)", n-1)
		}
		return desc
	}

	var cwEvent events.CloudWatchEvent
	if err := json.Unmarshal(raw, &cwEvent); err == nil && cwEvent.DetailType != "" {
		return fmt.Sprintf("%s from %s", cwEvent.DetailType, cwEvent.Source)
	}

	return "unrecognized event"
}
