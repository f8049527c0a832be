package attempt

// tickMsg is scheduled once per second while the attempt is running.
type tickMsg struct{}

// tickedMsg is sent after the engine applied a tick. The final tick also
// scores the attempt before it is sent.
type tickedMsg struct{}

// submittedMsg is sent when a manual submission has been scored.
type submittedMsg struct{}
