package kernel

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type QuestionSetID string

func NewQuestionSetID(id string) QuestionSetID { return QuestionSetID(id) }
func (q QuestionSetID) String() string         { return string(q) }
func (q QuestionSetID) IsEmpty() bool          { return string(q) == "" }

type FeedbackID string

func NewFeedbackID(id string) FeedbackID { return FeedbackID(id) }
func (f FeedbackID) String() string      { return string(f) }
func (f FeedbackID) IsEmpty() bool       { return string(f) == "" }

type DocumentID string

func NewDocumentID(id string) DocumentID { return DocumentID(id) }
func (d DocumentID) String() string      { return string(d) }
func (d DocumentID) IsEmpty() bool       { return string(d) == "" }
