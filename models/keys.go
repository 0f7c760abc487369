// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// DatasetKey identifies a polling source/topic
type DatasetKey string

const (
	DatasetFirstPref DatasetKey = "firstpref"
	DatasetGovSat    DatasetKey = "govsat"
	DatasetLeaders   DatasetKey = "leaders"
	DatasetRedC      DatasetKey = "redc"
)

// Datasets lists every dataset in display order
var Datasets = []DatasetKey{DatasetFirstPref, DatasetGovSat, DatasetLeaders, DatasetRedC}

// Label returns the display name shown next to the dataset radio button
func (d DatasetKey) Label() string {
	switch d {
	case DatasetFirstPref:
		return "B&A First Preference Polling"
	case DatasetGovSat:
		return "B&A Government Satisfaction Polling"
	case DatasetLeaders:
		return "B&A Party Leader Confidence Polling"
	case DatasetRedC:
		return "RedC First Preference Polling"
	}
	return string(d)
}

// Representations returns the representations published for the dataset.
// The first entry is the default when switching to this dataset.
func (d DatasetKey) Representations() []Representation {
	switch d {
	case DatasetFirstPref:
		return []Representation{RepresentationCount}
	case DatasetGovSat, DatasetLeaders:
		return []Representation{RepresentationProp, RepresentationCount}
	case DatasetRedC:
		return []Representation{RepresentationProp}
	}
	return nil
}

// Offers reports whether the dataset is published in representation r
func (d DatasetKey) Offers(r Representation) bool {
	for _, have := range d.Representations() {
		if have == r {
			return true
		}
	}
	return false
}

// ParseDatasetKey validates a dataset key coming from user input
func ParseDatasetKey(s string) (DatasetKey, error) {
	for _, d := range Datasets {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

// Representation selects raw counts or weighted proportions
type Representation string

const (
	RepresentationProp  Representation = "prop"
	RepresentationCount Representation = "count"
)

var Representations = []Representation{RepresentationProp, RepresentationCount}

func (r Representation) Label() string {
	switch r {
	case RepresentationProp:
		return "Proportional"
	case RepresentationCount:
		return "Raw Counts"
	}
	return string(r)
}

// AxisLabel is the y-axis caption for charts in this representation
func (r Representation) AxisLabel() string {
	if r == RepresentationProp {
		return "Proportion"
	}
	return "Respondents"
}

func ParseRepresentation(s string) (Representation, error) {
	for _, r := range Representations {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown representation %q", s)
}

// Demographic is the subpopulation dimension used to slice results
type Demographic string

const (
	DemographicTotal    Demographic = "total"
	DemographicGender   Demographic = "gender"
	DemographicAge      Demographic = "age"
	DemographicSocial   Demographic = "social"
	DemographicRegion   Demographic = "region"
	DemographicUrban    Demographic = "urban"
	DemographicNumConst Demographic = "num_const"
	DemographicVoteProb Demographic = "vote_prob"
	DemographicVotePrev Demographic = "vote_prev"
	DemographicVoteNext Demographic = "vote_next"
)

var Demographics = []Demographic{
	DemographicTotal,
	DemographicGender,
	DemographicAge,
	DemographicSocial,
	DemographicRegion,
	DemographicUrban,
	DemographicNumConst,
	DemographicVoteProb,
	DemographicVotePrev,
	DemographicVoteNext,
}

func (d Demographic) Label() string {
	switch d {
	case DemographicTotal:
		return "Total Population"
	case DemographicGender:
		return "Gender"
	case DemographicAge:
		return "Age"
	case DemographicSocial:
		return "Social Class"
	case DemographicRegion:
		return "Province"
	case DemographicUrban:
		return "Urban/Rural"
	case DemographicNumConst:
		return "Constituency Seats"
	case DemographicVoteProb:
		return "Likelihood of Voting in a General Election"
	case DemographicVotePrev:
		return "Previous General Election Vote"
	case DemographicVoteNext:
		return "Next General Election Vote"
	}
	return string(d)
}

func ParseDemographic(s string) (Demographic, error) {
	for _, d := range Demographics {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown demographic %q", s)
}

// TableKey identifies one published table: a dataset in one representation
type TableKey struct {
	Dataset        DatasetKey
	Representation Representation
}

// Tables lists the six published tables
var Tables = []TableKey{
	{DatasetFirstPref, RepresentationCount},
	{DatasetGovSat, RepresentationCount},
	{DatasetGovSat, RepresentationProp},
	{DatasetLeaders, RepresentationCount},
	{DatasetLeaders, RepresentationProp},
	{DatasetRedC, RepresentationProp},
}

func (k TableKey) Valid() bool {
	return k.Dataset.Offers(k.Representation)
}

func (k TableKey) String() string {
	return string(k.Dataset) + "/" + string(k.Representation)
}

// FileName returns the CSV file the table is published as
func (k TableKey) FileName() string {
	if k.Dataset == DatasetRedC {
		return "data_redc_firstpref_prop.csv"
	}
	suffix := "prop"
	if k.Representation == RepresentationCount {
		suffix = "counts"
	}
	return "data_banda_" + string(k.Dataset) + "_" + suffix + ".csv"
}
