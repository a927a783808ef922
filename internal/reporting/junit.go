package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one recorded check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a report to JUnit XML. Each check is one test
// case: failures carry a <failure>, warnings pass with the message in
// <system-out>. Case durations are the gaps between record timestamps.
func ConvertToJUnit(r *models.Report) *JUnitTestSuites {
	suiteName := r.Metadata.Tool
	if r.Metadata.OperationType != "" {
		suiteName = fmt.Sprintf("%s-%s", r.Metadata.Tool, r.Metadata.OperationType)
	}

	suite := JUnitTestSuite{
		Name:      suiteName,
		Tests:     r.Summary.TotalChecks,
		Failures:  r.Summary.Failed,
		Timestamp: r.Metadata.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: r.Metadata.RunID},
			{Name: "target", Value: r.Metadata.Target},
			{Name: "platform", Value: r.Metadata.Platform},
			{Name: "warnings", Value: fmt.Sprint(r.Summary.Warnings)},
			{Name: "success_rate", Value: fmt.Sprintf("%.2f", r.Summary.SuccessRate)},
		},
	}

	prev := r.Metadata.Timestamp
	for _, c := range r.Checks {
		tc := JUnitTestCase{
			Name:      c.Name,
			Classname: suiteName,
			Time:      elapsedSeconds(prev, c.Timestamp),
		}
		prev = c.Timestamp

		switch c.Status {
		case models.StatusFail:
			tc.Failure = &JUnitFailure{
				Message: c.Message,
				Type:    "CheckFailure",
				Body:    c.Detail(),
			}
		case models.StatusWarning:
			tc.SystemOut = c.Detail()
		}
		suite.TestCases = append(suite.TestCases, tc)
		suite.Time += tc.Time
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Time:       suite.Time,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func elapsedSeconds(from, to time.Time) float64 {
	if from.IsZero() || to.Before(from) {
		return 0
	}
	return to.Sub(from).Seconds()
}

// WriteJUnitXML writes JUnit XML for r to w.
func WriteJUnitXML(w io.Writer, r *models.Report) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	_, err = w.Write(output)
	return err
}
