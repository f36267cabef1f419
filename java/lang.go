package java

// langTypes are the public top-level types of java.lang. Front ends use
// them to qualify simple names when java.lang itself is not part of the
// universe.
var langTypes = map[string]bool{
	"Appendable": true, "AutoCloseable": true, "Boolean": true, "Byte": true,
	"CharSequence": true, "Character": true, "Class": true, "ClassLoader": true,
	"ClassCastException": true, "CloneNotSupportedException": true, "Cloneable": true,
	"Comparable": true, "Deprecated": true, "Double": true, "Enum": true,
	"Error": true, "Exception": true, "Float": true, "FunctionalInterface": true,
	"IllegalArgumentException": true, "IllegalStateException": true,
	"IndexOutOfBoundsException": true, "Integer": true, "InterruptedException": true,
	"Iterable": true, "Long": true, "Math": true, "Number": true,
	"NullPointerException": true, "NumberFormatException": true, "Object": true,
	"Override": true, "Process": true, "Record": true, "Runnable": true,
	"Runtime": true, "RuntimeException": true, "SafeVarargs": true, "Short": true,
	"StackOverflowError": true, "String": true, "StringBuffer": true,
	"StringBuilder": true, "SuppressWarnings": true, "System": true, "Thread": true,
	"Throwable": true, "UnsupportedOperationException": true, "Void": true,
}

// IsLangType reports whether simple names a public type of java.lang.
func IsLangType(simple string) bool {
	return langTypes[simple]
}
