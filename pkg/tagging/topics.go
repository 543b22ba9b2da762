package tagging

// courseTopics is the computer systems curriculum the service ships with.
var courseTopics = []string{
	// Data representation
	"Integer Representation",
	"Integer Arithmetic",
	"Floating Point Representation",
	"Floating Point Operations",
	"Bit-Level Operations",
	"Byte Ordering",
	"String Representation",

	// Machine-level representation
	"Machine Code Basics",
	"x86-64 Data Formats",
	"Registers & Operands",
	"Data Movement (mov)",
	"x86-64 Arithmetic & Logic",
	"Control Flow (Assembly)",
	"Procedures (Assembly)",
	"Array Allocation (Assembly)",
	"Structs & Unions (Assembly)",
	"Buffer Overflow",
	"Floating-Point Code (Assembly)",

	// Performance
	"Optimizing Compilers",
	"Performance Measurement (CPE)",
	"Loop Optimization",
	"Procedure Call Optimization",
	"Memory Reference Optimization",
	"Instruction-Level Parallelism",

	// Memory hierarchy
	"Storage Technologies",
	"Locality",
	"Cache Memories",
	"Cache Hits & Misses",
	"Cache Write Policies",
	"Cache-Friendly Code",

	// Linking
	"Compiler Drivers",
	"Static Linking",
	"Object Files",
	"Symbol Resolution",
	"Relocation",
	"Dynamic Linking",
	"Position-Independent Code (PIC)",
	"Library Interpositioning",

	// Exceptional control flow
	"Exceptions & Interrupts",
	"Exception Handling",
	"Processes",
	"Context Switching",
	"System Calls",
	"Process Control (fork, execve, waitpid)",
	"Signals",
	"Nonlocal Jumps (setjmp, longjmp)",

	// Virtual memory
	"Physical & Virtual Addressing",
	"VM for Caching",
	"VM for Memory Management",
	"VM for Memory Protection",
	"Address Translation (MMU, TLB)",
	"Memory Mapping (mmap)",
	"Dynamic Memory Allocation",
	"Garbage Collection",
	"Memory Bugs",

	// System-level I/O
	"Unix I/O",
	"File Operations (Open, Close, Read, Write)",
	"Robust I/O (RIO)",
	"File Metadata",
	"File Sharing",
	"I/O Redirection",

	// Network programming
	"Client-Server Model",
	"Networking Basics",
	"IP Addressing & DNS",
	"Sockets API",
	"Host & Service Conversion",
	"Web Servers (HTTP)",

	// Concurrency
	"Process-Based Concurrency",
	"Event-Based Concurrency (I/O Multiplexing)",
	"Thread-Based Concurrency (Pthreads)",
	"Shared Variables & Threads",
	"Semaphore Synchronization",
	"Thread Safety & Reentrancy",
	"Race Conditions",
	"Deadlocks",

	// General programming
	"Debugging Principles",
	"Program Profiling",
	"GDB (Debugger)",
	"Coding Style",
}

// DefaultVocabulary returns the built-in course topic vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(courseTopics)
	if err != nil {
		panic(err)
	}
	return v
}
